package entsoe

import "encoding/xml"

// Document types and process types from the ENTSO-E transparency platform.
const (
	documentTypeDayAheadPrices = "A44"
	documentTypeActualLoad     = "A65"
	processTypeRealised        = "A16"
)

type publicationMarketDocument struct {
	XMLName    xml.Name     `xml:"Publication_MarketDocument"`
	TimeSeries []timeSeries `xml:"TimeSeries"`
}

type glMarketDocument struct {
	XMLName    xml.Name     `xml:"GL_MarketDocument"`
	TimeSeries []timeSeries `xml:"TimeSeries"`
}

type timeSeries struct {
	Periods []period `xml:"Period"`
}

type period struct {
	TimeInterval timeInterval `xml:"timeInterval"`
	Resolution   string       `xml:"resolution"`
	Points       []point      `xml:"Point"`
}

type timeInterval struct {
	Start string `xml:"start"`
	End   string `xml:"end"`
}

type point struct {
	Position int     `xml:"position"`
	Price    float64 `xml:"price.amount"`
	Quantity float64 `xml:"quantity"`
}

type acknowledgementMarketDocument struct {
	XMLName xml.Name `xml:"Acknowledgement_MarketDocument"`
	Reason  struct {
		Code string `xml:"code"`
		Text string `xml:"text"`
	} `xml:"Reason"`
}
