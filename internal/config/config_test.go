package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Server.Port)
	}
	if cfg.Pricing.DefaultProfitMargin != 40 || cfg.Pricing.DefaultEggQuantity != 10 {
		t.Errorf("unexpected pricing defaults: %+v", cfg.Pricing)
	}
	if cfg.Sheets.Enabled() {
		t.Errorf("sheets export should be disabled without credentials")
	}
	if cfg.Notify.Enabled() {
		t.Errorf("webhook should be disabled without a URL")
	}
}

func TestLoad_RejectsMarginOf100(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DEFAULT_PROFIT_MARGIN", "100")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for margin 100")
	}
}

func TestLoad_RejectsNonNumericQuantity(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("DEFAULT_EGG_QUANTITY", "ten")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error for non-numeric quantity")
	}
}

func TestLoad_RejectsPartialSheetsConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("REPORT_SPREADSHEET_ID", "sheet-id")

	if _, err := Load(""); err == nil {
		t.Fatalf("expected error when only one sheets variable is set")
	}
}
