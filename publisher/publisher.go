// Package publisher pushes finished load-shift schedules to an MQTT broker
// so home automation systems can pick them up.
package publisher

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/angas/loadshift-go/optimize"
)

type Publisher struct {
	mqttClient  mqtt.Client
	logger      *slog.Logger
	topicPrefix string
}

type scheduleMessage struct {
	Zone        string               `json:"zone_eic"`
	Date        string               `json:"date_utc"`
	PublishedAt string               `json:"published_at"`
	Savings     float64              `json:"savings_eur"`
	Schedule    []optimize.ShiftHour `json:"schedule"`
}

func New(broker string, port int16, username string, password string, topicPrefix string) *Publisher {
	logger := slog.Default().With("module", "publisher")
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", broker, port))
	opts.SetClientID("loadshift")
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(client mqtt.Client) {
		logger.Info("schedule MQTT connected")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		logger.Warn("schedule MQTT connection lost", slog.Any("error", err))
	}

	mqttLogger := slog.Default().With("module", "mqtt")
	mqtt.CRITICAL = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.ERROR = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.WARN = newMqttLogger(mqttLogger, slog.LevelWarn)

	return &Publisher{
		mqttClient:  mqtt.NewClient(opts),
		logger:      logger,
		topicPrefix: topicPrefix,
	}
}

func (p *Publisher) Connect() error {
	p.logger.Debug("connecting schedule MQTT client")

	if token := p.mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	return nil
}

func (p *Publisher) Disconnect() {
	p.logger.Info("disconnecting schedule MQTT client")
	p.mqttClient.Disconnect(250)
}

// PublishSchedule sends the schedule as retained JSON so late subscribers
// still see the latest plan per zone. Publish failures are logged, not
// returned, because the HTTP response must not depend on broker health.
func (p *Publisher) PublishSchedule(zone string, date string, res optimize.Result) {
	payload, err := json.Marshal(scheduleMessage{
		Zone:        zone,
		Date:        date,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
		Savings:     res.Savings,
		Schedule:    res.Schedule,
	})
	if err != nil {
		p.logger.Error("error encoding schedule message", slog.Any("error", err))
		return
	}

	topic := fmt.Sprintf("%s/schedule/%s", p.topicPrefix, zone)
	token := p.mqttClient.Publish(topic, 0, true, payload)
	if ok := token.WaitTimeout(time.Second * 5); !ok {
		p.logger.Warn("timeout publishing schedule", slog.String("topic", topic))
	} else if token.Error() != nil {
		p.logger.Error("error publishing schedule",
			slog.String("topic", topic), slog.Any("error", token.Error()))
	} else {
		p.logger.Debug("published schedule", slog.String("topic", topic))
	}
}
