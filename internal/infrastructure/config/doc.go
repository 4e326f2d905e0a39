// Package config provides configuration loading for Gray Logic Intercom.
//
// Configuration is read from a YAML file, merged over hardcoded defaults,
// and finally overridden by INTERCOM_* environment variables. Secrets
// (vendor tokens, the JWT signing secret, MQTT credentials) should come
// from the environment rather than the file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.MQTT.Broker.Host)
package config
