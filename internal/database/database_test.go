package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConnect_InMemory(t *testing.T) {
	DB = nil

	cfg := Config{
		URL:         ":memory:",
		MaxIdleConn: 1,
		MaxOpenConn: 1,
		Debug:       false,
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if db == nil {
		t.Fatal("Expected non-nil db")
	}
	if DB == nil {
		t.Error("Expected global DB to be set")
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		t.Errorf("Failed to query database: %v", err)
	}
	if result != 1 {
		t.Errorf("Expected 1, got %d", result)
	}

	if err := Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestConnect_WithFilePrefix(t *testing.T) {
	DB = nil

	tmpDir, err := os.MkdirTemp("", "idkspot-db-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	dbPath := filepath.Join(tmpDir, "test.db")
	cfg := Config{
		URL:         "file:" + dbPath,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
		Debug:       false,
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if db == nil {
		t.Fatal("Expected non-nil db")
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Expected database file to be created")
	}

	_ = Close()
}

func TestConnect_CreatesDirectory(t *testing.T) {
	DB = nil

	tmpDir, err := os.MkdirTemp("", "idkspot-db-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	nestedPath := filepath.Join(tmpDir, "nested", "dir", "test.db")
	cfg := Config{
		URL:         nestedPath,
		MaxIdleConn: 1,
		MaxOpenConn: 1,
		Debug:       false,
	}

	db, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	if db == nil {
		t.Fatal("Expected non-nil db")
	}

	nestedDir := filepath.Dir(nestedPath)
	if _, err := os.Stat(nestedDir); os.IsNotExist(err) {
		t.Error("Expected nested directory to be created")
	}

	_ = Close()
}

func TestClose_NilDB(t *testing.T) {
	DB = nil

	if err := Close(); err != nil {
		t.Errorf("Close with nil DB should not error: %v", err)
	}
}
