// Package mqtt provides the MQTT client for Gray Logic Intercom.
//
// MQTT is the bridge's link to the Gray Logic platform: entity state
// (last-call sensors, door PIN sensors) is published retained to
// graylogic/state/intercom/<entity_id>, and incoming-call events from
// the vendor notification channel are consumed from
// graylogic/event/intercom/incoming_call.
//
// The client wraps eclipse/paho.mqtt.golang with connection management,
// tracked subscriptions (restored on reconnect), publish timeouts, and
// panic recovery around message handlers.
//
// Usage:
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.IncomingCall(), 1,
//	    func(topic string, payload []byte) error {
//	        // handle event
//	        return nil
//	    })
package mqtt
