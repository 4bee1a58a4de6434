package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SqliteDefaultsToCounterAllocator(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("OPERATOR_SECRET", "s3cret")
	t.Setenv("INVOICE_ALLOCATOR", "")
	t.Setenv("BRAND_CONTACT", "Line one | Line two||")
	t.Setenv("PDF_COMPRESS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "counter", cfg.InvoiceAllocator)
	assert.Equal(t, "test.db", cfg.DSN())
	assert.Equal(t, []string{"Line one", "Line two"}, cfg.BrandContact)
	assert.Equal(t, "INV-", cfg.InvoicePrefix)
	assert.True(t, cfg.PDFCompress)
}

func TestLoad_PostgresDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "desk")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "payouts")
	t.Setenv("DB_SSLMODE", "require")
	t.Setenv("OPERATOR_SECRET", "s3cret")
	t.Setenv("INVOICE_ALLOCATOR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sequence", cfg.InvoiceAllocator)
	assert.Equal(t, "host=db user=desk password=pw dbname=payouts port=5433 sslmode=require", cfg.DSN())
}

func TestLoad_Rejects(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"DB_DRIVER": "sqlite", "OPERATOR_SECRET": ""}},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle", "OPERATOR_SECRET": "x"}},
		{"sequence on sqlite", map[string]string{"DB_DRIVER": "sqlite", "OPERATOR_SECRET": "x", "INVOICE_ALLOCATOR": "sequence"}},
		{"bad auto migrate", map[string]string{"DB_AUTO_MIGRATE": "maybe"}},
		{"bad pdf compress", map[string]string{"DB_DRIVER": "sqlite", "OPERATOR_SECRET": "x", "PDF_COMPRESS": "sometimes"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DB_AUTO_MIGRATE", "false")
			t.Setenv("INVOICE_ALLOCATOR", "")
			t.Setenv("PDF_COMPRESS", "")
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
