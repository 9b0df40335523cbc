package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_geography.sql",
		"00002_create_direcciones.sql",
		"00003_create_usuarios.sql",
		"00004_create_precios_descuentos.sql",
		"00005_create_productos_categorias.sql",
		"00006_create_detalle_productos.sql",
		"00007_create_ordenes.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No migration files found")
	}
}

func TestSoftDeleteColumnsPresent(t *testing.T) {
	migrationsDir := "../../migrations"

	softDeleted := []string{
		"paises", "provincias", "localidades", "direcciones", "usuarios",
		"productos", "categorias", "precios", "descuentos",
		"detalle_productos", "imagenes", "ordenes_compra", "detalle_ordenes",
	}

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	var schema strings.Builder
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Fatalf("Failed to read migration file %s: %v", file.Name(), err)
		}
		schema.Write(content)
	}

	schemaStr := schema.String()
	for _, table := range softDeleted {
		if !strings.Contains(schemaStr, "CREATE TABLE "+table+" (") {
			t.Errorf("Table %s is not created by any migration", table)
			continue
		}
		// Every entity table carries the activity flag used for soft deletes.
		tableDef := schemaStr[strings.Index(schemaStr, "CREATE TABLE "+table+" ("):]
		tableDef = tableDef[:strings.Index(tableDef, ";")]
		if !strings.Contains(tableDef, "is_active BOOLEAN NOT NULL DEFAULT TRUE") {
			t.Errorf("Table %s is missing the is_active column", table)
		}
	}
}
