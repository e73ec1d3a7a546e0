package config

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrProfileNotFound is returned when a named credential profile does not exist.
var ErrProfileNotFound = errors.New("no credential profile found")

// CredentialProfile is a named merchant key/salt pair the console can recall.
// The salt is excluded from JSON output; list endpoints expose only its
// masked form.
type CredentialProfile struct {
	Name        string    `json:"name"`
	MerchantKey string    `json:"merchantKey"`
	Salt        string    `json:"-"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SQLiteStorage handles persistent storage of merchant credential profiles
type SQLiteStorage struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// retryOperation executes a database operation with retry logic for SQLITE_BUSY errors
func (s *SQLiteStorage) retryOperation(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		// Check if it's a busy error
		if strings.Contains(err.Error(), "SQLITE_BUSY") || strings.Contains(err.Error(), "database is locked") {
			lastErr = err
			if attempt < maxRetries {
				// Exponential backoff: 10ms, 20ms, 40ms, 80ms
				backoff := time.Duration(10*(1<<attempt)) * time.Millisecond
				log.Printf("SQLite busy, retrying in %v (attempt %d/%d)", backoff, attempt+1, maxRetries+1)
				time.Sleep(backoff)
				continue
			}
		} else {
			// Not a retry-able error
			return err
		}
	}

	return fmt.Errorf("operation failed after %d retries, last error: %w", maxRetries+1, lastErr)
}

// NewSQLiteStorage creates a new SQLite storage instance optimized for multiple processes
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// SQLite connection string with multi-process optimizations
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000&_timeout=20000&_txlock=immediate", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)

	storage := &SQLiteStorage{
		db:   db,
		path: dbPath,
	}

	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := storage.optimizeForMultiProcess(); err != nil {
		log.Printf("Warning: Failed to apply optimizations: %v", err)
	}

	log.Printf("SQLite storage initialized at: %s", dbPath)
	return storage, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS credential_profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		merchant_key TEXT NOT NULL,
		merchant_salt TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_profile_name ON credential_profiles(name);

	-- Trigger to update updated_at column
	CREATE TRIGGER IF NOT EXISTS update_credential_profiles_updated_at
		AFTER UPDATE ON credential_profiles
	BEGIN
		UPDATE credential_profiles SET updated_at = CURRENT_TIMESTAMP WHERE id = NEW.id;
	END;
	`

	_, err := s.db.Exec(query)
	return err
}

// optimizeForMultiProcess applies SQLite optimizations for multi-process access
func (s *SQLiteStorage) optimizeForMultiProcess() error {
	optimizations := []string{
		"PRAGMA journal_mode = WAL;",    // Write-Ahead Logging for better concurrency
		"PRAGMA synchronous = NORMAL;",  // Balance between safety and speed
		"PRAGMA cache_size = 1000;",     // Increase cache size
		"PRAGMA busy_timeout = 30000;",  // 30 second timeout for lock waits
		"PRAGMA temp_store = memory;",   // Store temp tables in memory
		"PRAGMA mmap_size = 268435456;", // 256MB memory mapping
		"PRAGMA optimize;",              // Optimize database
	}

	for _, pragma := range optimizations {
		if _, err := s.db.Exec(pragma); err != nil {
			log.Printf("Warning: Failed to execute %s: %v", pragma, err)
		}
	}

	var journalMode string
	err := s.db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode)
	if err != nil {
		return fmt.Errorf("failed to check journal mode: %w", err)
	}

	log.Printf("SQLite journal mode: %s", journalMode)
	return nil
}

// SaveProfile saves a credential profile, replacing any existing one with the
// same name
func (s *SQLiteStorage) SaveProfile(profile CredentialProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if profile.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if profile.MerchantKey == "" || profile.Salt == "" {
		return fmt.Errorf("merchant key and salt are both required")
	}

	return s.retryOperation(func() error {
		query := `
		INSERT INTO credential_profiles (name, merchant_key, merchant_salt, description, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name)
		DO UPDATE SET
			merchant_key = excluded.merchant_key,
			merchant_salt = excluded.merchant_salt,
			description = excluded.description,
			updated_at = CURRENT_TIMESTAMP
		`

		_, err := s.db.Exec(query, profile.Name, profile.MerchantKey, profile.Salt, profile.Description)
		if err != nil {
			return fmt.Errorf("failed to save credential profile: %w", err)
		}

		log.Printf("Saved credential profile %s", profile.Name)
		return nil
	}, 3) // Max 3 retries
}

// LoadProfile loads a credential profile by name
func (s *SQLiteStorage) LoadProfile(name string) (CredentialProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profile CredentialProfile
	err := s.retryOperation(func() error {
		query := `
		SELECT name, merchant_key, merchant_salt, description, created_at, updated_at
		FROM credential_profiles
		WHERE name = ?
		`

		err := s.db.QueryRow(query, name).Scan(
			&profile.Name, &profile.MerchantKey, &profile.Salt,
			&profile.Description, &profile.CreatedAt, &profile.UpdatedAt,
		)
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
			}
			return fmt.Errorf("failed to load credential profile: %w", err)
		}

		return nil
	}, 3) // Max 3 retries

	return profile, err
}

// LoadAllProfiles loads every stored credential profile ordered by name
func (s *SQLiteStorage) LoadAllProfiles() ([]CredentialProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profiles []CredentialProfile
	err := s.retryOperation(func() error {
		query := `
		SELECT name, merchant_key, merchant_salt, description, created_at, updated_at
		FROM credential_profiles
		ORDER BY name
		`

		rows, err := s.db.Query(query)
		if err != nil {
			return fmt.Errorf("failed to query credential profiles: %w", err)
		}
		defer rows.Close()

		profiles = profiles[:0]
		for rows.Next() {
			var p CredentialProfile
			if err := rows.Scan(&p.Name, &p.MerchantKey, &p.Salt, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
				return fmt.Errorf("failed to scan row: %w", err)
			}
			profiles = append(profiles, p)
		}

		if err = rows.Err(); err != nil {
			return fmt.Errorf("error iterating rows: %w", err)
		}

		return nil
	}, 3) // Max 3 retries

	if err != nil {
		return nil, err
	}

	return profiles, nil
}

// DeleteProfile deletes a credential profile by name
func (s *SQLiteStorage) DeleteProfile(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.retryOperation(func() error {
		query := `
		DELETE FROM credential_profiles
		WHERE name = ?
		`

		result, err := s.db.Exec(query, name)
		if err != nil {
			return fmt.Errorf("failed to delete credential profile: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}

		if rowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, name)
		}

		log.Printf("Deleted credential profile %s", name)
		return nil
	}, 3) // Max 3 retries
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStats returns database statistics
func (s *SQLiteStorage) GetStats() (map[string]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := make(map[string]any)

	var totalProfiles int
	err := s.db.QueryRow("SELECT COUNT(*) FROM credential_profiles").Scan(&totalProfiles)
	if err != nil {
		return nil, fmt.Errorf("failed to count profiles: %w", err)
	}
	stats["total_profiles"] = totalProfiles

	if fileInfo, err := os.Stat(s.path); err == nil {
		stats["db_size_bytes"] = fileInfo.Size()
	}

	stats["db_path"] = s.path

	return stats, nil
}
