// Gray Logic Intercom - building intercom bridge
//
// This is the main entry point for the Gray Logic intercom bridge. It
// connects configured intercom accounts to the Gray Logic platform:
// door PIN codes and open-door buttons become platform entities,
// incoming calls update per-account last-call sensors, and relay-open
// actions are exposed over the HTTP API and entity buttons.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nerrad567/gray-logic-intercom/internal/account"
	"github.com/nerrad567/gray-logic-intercom/internal/api"
	"github.com/nerrad567/gray-logic-intercom/internal/call"
	"github.com/nerrad567/gray-logic-intercom/internal/calllog"
	"github.com/nerrad567/gray-logic-intercom/internal/domonap"
	"github.com/nerrad567/gray-logic-intercom/internal/entity"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/database"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/influxdb"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-intercom/internal/infrastructure/mqtt"
	"github.com/nerrad567/gray-logic-intercom/internal/provision"
	"github.com/nerrad567/gray-logic-intercom/internal/relay"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
func run(ctx context.Context) error { //nolint:gocognit // startup wiring is one linear sequence
	log := logging.Default()
	log.Info("starting Gray Logic Intercom",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath, "accounts", len(cfg.Accounts))

	log = logging.New(cfg.Logging, version)

	// Open the call-log database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	callLog := calllog.NewRepository(db)
	if err := callLog.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("preparing call log schema: %w", err)
	}

	// Connect to the MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	mqttClient.SetLogger(log)
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			influxClient.Close()
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		log.Info("InfluxDB connected", "url", cfg.InfluxDB.URL, "bucket", cfg.InfluxDB.Bucket)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Entity store with retained-state and WebSocket observers
	entities := entity.NewStore()

	topics := mqtt.Topics{}
	entities.Subscribe(func(st entity.State) {
		if pubErr := mqttClient.PublishJSON(topics.EntityState(st.EntityID), st); pubErr != nil {
			log.Warn("publishing entity state failed", "entity_id", st.EntityID, "error", pubErr)
		}
	})

	hub := api.NewHub(cfg.WebSocket, log)
	go hub.Run(ctx)
	entities.Subscribe(hub.BroadcastEntityState)

	// Build accounts from configuration
	accounts := account.NewRegistry()
	digitsSeen := make(map[string]string, len(cfg.Accounts))
	for _, acctCfg := range cfg.Accounts {
		digits := account.PhoneDigits(acctCfg.PhoneNumber, acctCfg.Title)
		if digits == "" {
			log.Warn("no phone identity derivable; entity names fall back to the entry id",
				"entry_id", acctCfg.ID)
		} else if other, dup := digitsSeen[digits]; dup {
			// Colliding identities share entity names; the first account wins
			// registration and the duplicate surfaces here instead of failing startup.
			log.Warn("duplicate phone identity across accounts",
				"phone_digits", digits, "entry_id", acctCfg.ID, "also", other)
		} else {
			digitsSeen[digits] = acctCfg.ID
		}

		acct := &account.Account{
			EntryID:     acctCfg.ID,
			Title:       acctCfg.Title,
			PhoneDigits: digits,
			Client:      domonap.NewHTTPClient(acctCfg.API),
		}
		if addErr := accounts.Add(acct); addErr != nil {
			return fmt.Errorf("registering account %s: %w", acctCfg.ID, addErr)
		}
	}

	// Relay orchestrator
	orchestrator := relay.New(relay.Deps{
		Accounts: accounts,
		Entities: entities,
		CallLog:  callLog,
		Influx:   influxClient,
		Logger:   log,
	})

	// Provision entities and attach call trackers
	provisioner := provision.New(provision.Deps{
		Entities: entities,
		Opener:   orchestrator,
		Logger:   log,
	})

	dispatcher := call.NewDispatcher(mqttClient, log)
	for _, acct := range accounts.List() {
		sensorID, provErr := provisioner.Account(ctx, acct)
		if provErr != nil {
			// The account stays registered: relay actions still work, the
			// entity surface appears on the next restart.
			log.Error("provisioning account failed", "entry_id", acct.EntryID, "error", provErr)
			continue
		}

		dispatcher.Register(call.NewTracker(call.TrackerDeps{
			EntryID:  acct.EntryID,
			EntityID: sensorID,
			Entities: entities,
			CallLog:  callLog,
			Influx:   influxClient,
			Logger:   log,
		}))
	}

	if err := dispatcher.Attach(); err != nil {
		return fmt.Errorf("attaching call dispatcher: %w", err)
	}
	defer func() {
		if detachErr := dispatcher.Detach(); detachErr != nil {
			log.Warn("detaching call dispatcher", "error", detachErr)
		}
	}()

	// Publish the initial entity snapshot so retained state exists before
	// the first call or press.
	for _, st := range entities.All() {
		if pubErr := mqttClient.PublishJSON(topics.EntityState(st.EntityID), st); pubErr != nil {
			log.Warn("publishing initial entity state failed", "entity_id", st.EntityID, "error", pubErr)
		}
	}

	// Start the HTTP API
	server, err := api.New(api.Deps{
		Config:      cfg.API,
		WS:          cfg.WebSocket,
		Security:    cfg.Security,
		Logger:      log,
		Entities:    entities,
		Accounts:    accounts,
		Relay:       orchestrator,
		CallLog:     callLog,
		DB:          db,
		ExternalHub: hub,
		Version:     version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	if err := healthCheck(ctx, db, mqttClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal",
		"entities", entities.Len(),
		"accounts", accounts.Len(),
	)

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")
	log.Info("Gray Logic Intercom stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses INTERCOM_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("INTERCOM_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies the infrastructure connections are healthy.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}
	return nil
}
