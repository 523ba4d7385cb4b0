package tele

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/juju/errors"
	"github.com/temoto/till/log2"
	tele_config "github.com/temoto/till/tele/config"
)

type transportMqtt struct {
	log       *log2.Log
	onCommand func([]byte) bool
	m         mqtt.Client
	timeout   time.Duration

	topicPrefix  string
	topicConnect string
	topicCommand string
}

func (self *transportMqtt) Init(ctx context.Context, log *log2.Log, teleConfig tele_config.Config, onCommand CommandCallback) error {
	if teleConfig.MqttBroker == "" {
		return errors.NotValidf("tele mqtt_broker empty")
	}
	self.log = log
	mqtt.ERROR = log
	mqtt.CRITICAL = log
	mqtt.WARN = log
	if teleConfig.MqttLogDebug {
		mqtt.DEBUG = log
	}

	clientId := fmt.Sprintf("till%d", teleConfig.TillId)
	self.onCommand = func(payload []byte) bool {
		return onCommand(ctx, payload)
	}
	self.topicPrefix = clientId
	self.topicConnect = clientId + "/c"
	self.topicCommand = clientId + "/" + topicCommand
	self.timeout = secondsDefault(teleConfig.NetworkTimeoutSec, DefaultNetworkTimeout)
	keepAlive := secondsDefault(teleConfig.KeepaliveSec, 60*time.Second)

	opt := mqtt.NewClientOptions().
		AddBroker(teleConfig.MqttBroker).
		SetBinaryWill(self.topicConnect, []byte{0x00}, 1, true).
		SetCleanSession(false).
		SetClientID(clientId).
		SetUsername(clientId).
		SetPassword(teleConfig.MqttPassword).
		SetDefaultPublishHandler(self.messageHandler).
		SetKeepAlive(keepAlive).
		SetPingTimeout(self.timeout).
		SetOrderMatters(false).
		SetResumeSubs(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetOnConnectHandler(self.onConnectHandler).
		SetConnectionLostHandler(self.connectLostHandler)
	self.m = mqtt.NewClient(opt)
	// with ConnectRetry token completes only on success, don't wait here
	self.m.Connect()
	return nil
}

func (self *transportMqtt) Close() {
	if self.m == nil {
		return
	}
	self.m.Publish(self.topicConnect, 1, true, []byte{0x00}).WaitTimeout(self.timeout)
	self.m.Disconnect(250)
}

func (self *transportMqtt) Send(topicSuffix string, payload []byte) bool {
	topic := self.topicPrefix + "/" + topicSuffix
	token := self.m.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(self.timeout) {
		self.log.Errorf("mqtt publish topic=%s timeout", topic)
		return false
	}
	if err := token.Error(); err != nil {
		self.log.Errorf("mqtt publish topic=%s err=%v", topic, err)
		return false
	}
	return true
}

func (self *transportMqtt) messageHandler(c mqtt.Client, msg mqtt.Message) {
	payload := msg.Payload()
	self.log.Debugf("mqtt income topic=%s payload=%x", msg.Topic(), payload)
	self.onCommand(payload)
}

func (self *transportMqtt) connectLostHandler(c mqtt.Client, err error) {
	self.log.Infof("mqtt disconnect err=%v", err)
}

func (self *transportMqtt) onConnectHandler(c mqtt.Client) {
	self.log.Infof("mqtt connect")
	if token := c.Subscribe(self.topicCommand, 1, nil); token.Wait() && token.Error() != nil {
		self.log.Errorf("mqtt subscribe topic=%s err=%v", self.topicCommand, token.Error())
		return
	}
	c.Publish(self.topicConnect, 1, true, []byte{0x01})
}
