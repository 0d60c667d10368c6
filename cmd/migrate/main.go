package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	logpkg "github.com/light-bringer/carcat-service/internal/logger"
)

const migrationsTable = "schema_migrations"

func main() {
	m := &migrator{}
	flag.StringVar(&m.project, "project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	flag.StringVar(&m.instance, "instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	flag.StringVar(&m.database, "database", getEnvOrDefault("SPANNER_DATABASE_ID", "carcat-db"), "Spanner database ID")
	flag.StringVar(&m.dir, "migrations", "migrations", "Directory containing migration SQL files")
	flag.Parse()

	logger, err := logpkg.NewLogger(getEnvOrDefault("ENV", "local"), os.Getenv("LOG_LEVEL"))
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()
	m.log = logger

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		logger.Info("Using Spanner emulator", zap.String("host", host))
	}

	if err := m.run(context.Background()); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	logger.Info("Migrations completed successfully")
}

type migrator struct {
	project  string
	instance string
	database string
	dir      string
	log      *zap.Logger
}

func (m *migrator) instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", m.project, m.instance)
}

func (m *migrator) databasePath() string {
	return fmt.Sprintf("%s/databases/%s", m.instancePath(), m.database)
}

func (m *migrator) run(ctx context.Context) error {
	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	if err := m.ensureDatabase(ctx, adminClient); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	client, err := spanner.NewClient(ctx, m.databasePath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	if err := m.applyMigrations(ctx, adminClient, client); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (m *migrator) ensureInstance(ctx context.Context) error {
	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.instancePath()})
	if err == nil {
		m.log.Info("Instance already exists", zap.String("instance", m.instance))
		return nil
	}
	if status.Code(err) != codes.NotFound {
		m.log.Warn("Unexpected error checking instance", zap.Error(err))
		return nil
	}

	m.log.Info("Creating instance", zap.String("instance", m.instance))
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     fmt.Sprintf("projects/%s", m.project),
		InstanceId: m.instance,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", m.project),
			DisplayName: "Development Instance",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}
	// the emulator may finish before Wait is called
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		m.log.Warn("Instance creation did not report success", zap.Error(err))
	}
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context, adminClient *database.DatabaseAdminClient) error {
	_, err := adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.databasePath()})
	if err == nil {
		m.log.Info("Database already exists", zap.String("database", m.database))
		return nil
	}
	if status.Code(err) != codes.NotFound {
		if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
			m.log.Warn("Proceeding with database in emulator mode", zap.Error(err))
			return nil
		}
		return fmt.Errorf("failed to check database: %w", err)
	}

	m.log.Info("Creating database", zap.String("database", m.database))
	op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.instancePath(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.database),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	if _, err := op.Wait(ctx); err != nil {
		return fmt.Errorf("failed to wait for database creation: %w", err)
	}
	return nil
}

// ensureMigrationsTable creates schema_migrations on databases that predate it.
func (m *migrator) ensureMigrationsTable(ctx context.Context, adminClient *database.DatabaseAdminClient, client *spanner.Client) error {
	var n int64
	err := client.Single().Query(ctx, spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = '' AND table_name = @name",
		Params: map[string]interface{}{"name": migrationsTable},
	}).Do(func(row *spanner.Row) error {
		return row.Columns(&n)
	})
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if n > 0 {
		return nil
	}

	m.log.Info("Creating migrations table", zap.String("table", migrationsTable))
	op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database: m.databasePath(),
		Statements: []string{fmt.Sprintf(`CREATE TABLE %s (
  version STRING(255) NOT NULL,
  applied_at TIMESTAMP NOT NULL OPTIONS (allow_commit_timestamp=true),
) PRIMARY KEY (version)`, migrationsTable)},
	})
	if err != nil {
		return fmt.Errorf("failed to start DDL update: %w", err)
	}
	return op.Wait(ctx)
}

// appliedVersions lists migration files already recorded in schema_migrations.
func appliedVersions(ctx context.Context, client *spanner.Client) (map[string]bool, error) {
	iter := client.Single().Query(ctx, spanner.Statement{
		SQL: fmt.Sprintf("SELECT version FROM %s", migrationsTable),
	})
	defer iter.Stop()

	applied := make(map[string]bool)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return applied, nil
		}
		if err != nil {
			return nil, err
		}
		var version string
		if err := row.Columns(&version); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		applied[version] = true
	}
}

func (m *migrator) applyMigrations(ctx context.Context, adminClient *database.DatabaseAdminClient, client *spanner.Client) error {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		m.log.Info("No migration files found", zap.String("dir", m.dir))
		return nil
	}

	if err := m.ensureMigrationsTable(ctx, adminClient, client); err != nil {
		return err
	}
	applied, err := appliedVersions(ctx, client)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", migrationsTable, err)
	}

	for _, file := range files {
		version := filepath.Base(file)
		if applied[version] {
			m.log.Debug("Migration already applied", zap.String("version", version))
			continue
		}

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.databasePath(),
			Statements: splitDDLStatements(string(content)),
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", version, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", version, err)
		}

		_, err = client.Apply(ctx, []*spanner.Mutation{
			spanner.Insert(migrationsTable, []string{"version", "applied_at"}, []interface{}{version, spanner.CommitTimestamp}),
		})
		if err != nil {
			return fmt.Errorf("failed to record %s: %w", version, err)
		}
		m.log.Info("Applied migration", zap.String("version", version))
	}
	return nil
}

// splitDDLStatements drops comment lines and splits content on ';'.
func splitDDLStatements(content string) []string {
	var cleaned []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		cleaned = append(cleaned, line)
	}

	var result []string
	for _, stmt := range strings.Split(strings.Join(cleaned, "\n"), ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			result = append(result, stmt)
		}
	}
	return result
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
