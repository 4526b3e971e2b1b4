package db

import (
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	embeddedmigrations "github.com/terraincognita07/kira/migrations"
	"gorm.io/gorm"
)

// Migration files are named NNN_description.sql and run in numeric order.
var migrationNamePattern = regexp.MustCompile(`^(\d+)_[^/]*\.sql$`)

// schemaMigration is one row of the ledger that records applied scripts.
type schemaMigration struct {
	Version   int       `gorm:"column:version;primaryKey;autoIncrement:false"`
	Name      string    `gorm:"column:name;not null"`
	AppliedAt time.Time `gorm:"column:applied_at;not null"`
}

func (schemaMigration) TableName() string {
	return "schema_migrations"
}

type migrationScript struct {
	version int
	name    string
	body    string
}

type migrator struct {
	source fs.FS
	now    func() time.Time
}

func migrateSchema(database *gorm.DB) error {
	_, err := migrator{source: embeddedmigrations.Files, now: time.Now}.run(database)
	return err
}

// run applies every pending script and returns how many were applied.
func (m migrator) run(database *gorm.DB) (int, error) {
	if err := database.AutoMigrate(&schemaMigration{}); err != nil {
		return 0, fmt.Errorf("prepare migration ledger: %w", err)
	}

	scripts, err := m.scripts()
	if err != nil {
		return 0, err
	}

	done, err := appliedVersions(database)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, script := range scripts {
		if done[script.version] {
			continue
		}
		if err := m.apply(database, script); err != nil {
			return applied, err
		}
		log.Info().Int("version", script.version).Str("file", script.name).Msg("migration applied")
		applied++
	}
	return applied, nil
}

func (m migrator) scripts() ([]migrationScript, error) {
	entries, err := fs.ReadDir(m.source, ".")
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}

	scripts := make([]migrationScript, 0, len(entries))
	byVersion := make(map[int]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version, ok := migrationVersion(entry.Name())
		if !ok {
			continue
		}
		if other, dup := byVersion[version]; dup {
			return nil, fmt.Errorf("migrations %s and %s share version %d", other, entry.Name(), version)
		}
		byVersion[version] = entry.Name()

		body, err := fs.ReadFile(m.source, path.Clean(entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		scripts = append(scripts, migrationScript{version: version, name: entry.Name(), body: string(body)})
	}

	slices.SortFunc(scripts, func(a, b migrationScript) int {
		return a.version - b.version
	})
	return scripts, nil
}

func (m migrator) apply(database *gorm.DB, script migrationScript) error {
	statements := sqlStatements(script.body)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s is empty", script.name)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for index, statement := range statements {
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("migration %s statement %d: %w", script.name, index+1, err)
			}
		}
		entry := schemaMigration{Version: script.version, Name: script.name, AppliedAt: m.now().UTC()}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", script.name, err)
		}
		return nil
	})
}

func migrationVersion(fileName string) (int, bool) {
	matches := migrationNamePattern.FindStringSubmatch(strings.TrimSpace(fileName))
	if len(matches) != 2 {
		return 0, false
	}
	version, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, false
	}
	return version, true
}

func appliedVersions(database *gorm.DB) (map[int]bool, error) {
	var rows []schemaMigration
	if err := database.Select("version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migrations: %w", err)
	}
	versions := make(map[int]bool, len(rows))
	for _, row := range rows {
		versions[row.Version] = true
	}
	return versions, nil
}

// sqlStatements splits a script on semicolons. Scripts must not embed
// semicolons inside string literals or trigger bodies.
func sqlStatements(script string) []string {
	var statements []string
	for _, part := range strings.Split(script, ";") {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}
