package services

import (
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// SiteSettings holds the business details printed on every quotation.
type SiteSettings struct {
	CompanyName     string   `json:"companyName"`
	CompanyAddress  string   `json:"companyAddress"`
	CompanyPhone    string   `json:"companyPhone"`
	CompanyEmail    string   `json:"companyEmail"`
	CompanyGSTIN    string   `json:"companyGstin"`
	BankAccountName string   `json:"bankAccountName"`
	BankName        string   `json:"bankName"`
	BankAccountNo   string   `json:"bankAccountNo"`
	BankIFSC        string   `json:"bankIfsc"`
	BankBranch      string   `json:"bankBranch"`
	UPIID           string   `json:"upiId"`
	Terms           []string `json:"terms"`
}

// DefaultTerms are printed when no terms have been configured.
var DefaultTerms = []string{
	"Prices are valid for 15 days from the date of quotation.",
	"50% advance along with the confirmed order; balance before installation.",
	"Measurements are subject to final site verification.",
	"Goods once stitched cannot be returned or exchanged.",
	"Installation, rods and tracks are charged separately unless listed.",
}

// DefaultSiteSettings returns placeholder business details.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		CompanyName:    "Drape Studio",
		CompanyAddress: "Pune, Maharashtra",
		Terms:          append([]string(nil), DefaultTerms...),
	}
}

// LoadSiteSettings reads the first site_settings record. Missing records,
// missing collections and empty fields fall back to DefaultSiteSettings.
func LoadSiteSettings(app core.App, logger *zap.Logger) SiteSettings {
	settings := DefaultSiteSettings()

	records, err := app.FindRecordsByFilter("site_settings", "1=1", "created", 1, 0)
	if err != nil {
		logger.Warn("settings: load failed, using defaults", zap.Error(err))
		return settings
	}
	if len(records) == 0 {
		return settings
	}
	r := records[0]

	set := func(dst *string, field string) {
		if v := strings.TrimSpace(r.GetString(field)); v != "" {
			*dst = v
		}
	}
	set(&settings.CompanyName, "company_name")
	set(&settings.CompanyAddress, "company_address")
	set(&settings.CompanyPhone, "company_phone")
	set(&settings.CompanyEmail, "company_email")
	set(&settings.CompanyGSTIN, "company_gstin")
	set(&settings.BankAccountName, "bank_account_name")
	set(&settings.BankName, "bank_name")
	set(&settings.BankAccountNo, "bank_account_no")
	set(&settings.BankIFSC, "bank_ifsc")
	set(&settings.BankBranch, "bank_branch")
	set(&settings.UPIID, "upi_id")

	if terms := splitLines(r.GetString("terms")); len(terms) > 0 {
		settings.Terms = terms
	}
	return settings
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
