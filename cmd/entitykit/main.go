package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/entitykit/go-entity-kit/internal/config"
	"github.com/entitykit/go-entity-kit/internal/crypto"
	"github.com/entitykit/go-entity-kit/internal/logger"
	"github.com/entitykit/go-entity-kit/internal/resolver"
	"github.com/entitykit/go-entity-kit/internal/service"
	"github.com/entitykit/go-entity-kit/internal/store"
	"github.com/entitykit/go-entity-kit/migrations"
	"github.com/entitykit/go-entity-kit/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `Usage: entitykit <command> [flags] [args]

Commands:
  keygen                 generate a new base64-encoded encryption key
  encrypt                encrypt a JSON credential map from stdin
  decrypt                decrypt a credential blob from stdin
  store <name>           encrypt stdin and persist under <name>
  show <name>            fetch and decrypt the credential stored under <name>
  list                   list stored credential names
  delete <name>          delete the credential stored under <name>
  resolve <identifier>   resolve an entity by full or truncated UUID
  migrate                apply database migrations (PostgreSQL only)

Flags (after the command):
  -d <dsn>        database DSN
  -driver <name>  database driver: pgx (default) or sqlite3
  -key <key>      base64-encoded encryption key
  -table <name>   entity table for resolve
  -column <name>  identifier column for resolve
  -c <path>       JSON config file
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	command := os.Args[1]
	// Shift the subcommand out so config flag parsing sees only its flags.
	os.Args = append(os.Args[:1], os.Args[2:]...)

	log := logger.NewLogger("entitykit")

	switch command {
	case "version":
		printBuildInfo()
		return
	case "keygen":
		key, err := crypto.GenerateKey(rand.Reader)
		if err != nil {
			log.Fatal().Err(err).Msg("error generating key")
		}
		fmt.Println(key)
		return
	case "help", "-h", "-help", "--help":
		fmt.Print(usage)
		return
	}

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := log.WithContext(context.Background())

	if err := run(ctx, command, cfg, log); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
	}
}

func run(ctx context.Context, command string, cfg *config.StructuredConfig, log *logger.Logger) error {
	switch command {
	case "encrypt":
		return runEncrypt(cfg)
	case "decrypt":
		return runDecrypt(cfg)
	case "store":
		return runStore(ctx, cfg, log)
	case "show":
		return runShow(ctx, cfg, log)
	case "list":
		return runList(ctx, cfg, log)
	case "delete":
		return runDelete(ctx, cfg, log)
	case "resolve":
		return runResolve(ctx, cfg, log)
	case "migrate":
		return runMigrate(ctx, cfg, log)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runEncrypt(cfg *config.StructuredConfig) error {
	key, err := requireKey(cfg)
	if err != nil {
		return err
	}
	defer zero(key)

	payload, err := readCredentials(os.Stdin)
	if err != nil {
		return err
	}

	blob, err := crypto.NewCredentialCipher().Encrypt(payload, key)
	if err != nil {
		return err
	}

	fmt.Println(blob)
	return nil
}

func runDecrypt(cfg *config.StructuredConfig) error {
	key, err := requireKey(cfg)
	if err != nil {
		return err
	}
	defer zero(key)

	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("error reading blob from stdin: %w", err)
	}

	payload, err := crypto.NewCredentialCipher().Decrypt(strings.TrimSpace(string(raw)), key)
	if err != nil {
		return err
	}

	return printCredentials(payload)
}

func runStore(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	name, err := requireArg("store", "name")
	if err != nil {
		return err
	}

	key, err := requireKey(cfg)
	if err != nil {
		return err
	}
	defer zero(key)

	payload, err := readCredentials(os.Stdin)
	if err != nil {
		return err
	}

	svc, closeDB, err := openCredentialService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	record, err := svc.Store(ctx, name, payload, key)
	if err != nil {
		return err
	}

	fmt.Printf("stored %q (id %d)\n", record.Name, record.ID)
	return nil
}

func runShow(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	name, err := requireArg("show", "name")
	if err != nil {
		return err
	}

	key, err := requireKey(cfg)
	if err != nil {
		return err
	}
	defer zero(key)

	svc, closeDB, err := openCredentialService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	payload, err := svc.Reveal(ctx, name, key)
	if err != nil {
		return err
	}

	return printCredentials(payload)
}

func runList(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	svc, closeDB, err := openCredentialService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	records, err := svc.List(ctx)
	if err != nil {
		return err
	}

	for _, record := range records {
		fmt.Printf("%s\t%s\n", record.Name, record.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func runDelete(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	name, err := requireArg("delete", "name")
	if err != nil {
		return err
	}

	svc, closeDB, err := openCredentialService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := svc.Delete(ctx, name); err != nil {
		return err
	}

	fmt.Printf("deleted %q\n", name)
	return nil
}

func runResolve(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	candidate, err := requireArg("resolve", "identifier")
	if err != nil {
		return err
	}

	if cfg.Resolve.Table == "" || cfg.Resolve.IDColumn == "" {
		return errors.New("resolve requires -table and -column (or RESOLVE_TABLE / RESOLVE_ID_COLUMN)")
	}
	entityType := models.EntityType{Table: cfg.Resolve.Table, IDColumn: cfg.Resolve.IDColumn}

	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	var r resolver.Resolver
	switch driver(cfg) {
	case config.DriverSQLite:
		catalog := store.NewSQLiteCatalog(db, log)
		r = resolver.NewResolver(catalog, catalog, log)
	default:
		catalog := store.NewPostgresCatalog(db, log)
		r = resolver.NewResolver(catalog, catalog, log)
	}

	res, err := r.Resolve(ctx, entityType, candidate)
	if err != nil {
		return err
	}

	switch res.Outcome {
	case resolver.OutcomeFound:
		fmt.Printf("found %s.%s = %s\n", entityType.Table, entityType.IDColumn, res.Ref.ID)
	case resolver.OutcomeAmbiguous:
		fmt.Printf("ambiguous: %d entities match %q\n", res.Matches, candidate)
	default:
		fmt.Printf("not found: no entity matches %q\n", candidate)
	}
	return nil
}

func runMigrate(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) error {
	if driver(cfg) != config.DriverPostgres {
		return errors.New("migrations are PostgreSQL-only")
	}

	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Migrate(db.DB); err != nil {
		return err
	}

	fmt.Println("migrations applied")
	return nil
}

func openCredentialService(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (service.CredentialService, func() error, error) {
	db, err := openDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	repo := store.NewCredentialRepository(db, log)
	return service.NewCredentialService(repo, crypto.NewCredentialCipher(), log), db.Close, nil
}

func openDB(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*store.DB, error) {
	if cfg.Storage.DB.DSN == "" {
		return nil, errors.New("database DSN is required (-d or STORAGE_DB_DATABASE_URI)")
	}

	switch driver(cfg) {
	case config.DriverSQLite:
		return store.NewConnectSQLite(ctx, cfg.Storage.DB, log)
	default:
		return store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	}
}

func driver(cfg *config.StructuredConfig) string {
	if cfg.Storage.DB.Driver == "" {
		return config.DriverPostgres
	}
	return cfg.Storage.DB.Driver
}

func requireKey(cfg *config.StructuredConfig) ([]byte, error) {
	if cfg.App.EncryptionKey == "" {
		return nil, errors.New("encryption key is required (-key or APP_ENCRYPTION_KEY)")
	}
	return crypto.DecodeKey(cfg.App.EncryptionKey)
}

func requireArg(command, name string) (string, error) {
	args := flag.Args()
	if len(args) < 1 {
		return "", fmt.Errorf("%s requires a %s argument", command, name)
	}
	return args[0], nil
}

func readCredentials(r io.Reader) (models.Credentials, error) {
	var payload models.Credentials
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding credential payload from stdin: %w", err)
	}
	return payload, nil
}

func printCredentials(payload models.Credentials) error {
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding credential payload: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
