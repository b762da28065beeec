package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// Setup creates the site_settings, quote_requests and reviews collections
// when they do not exist yet.
func Setup(app core.App, logger *zap.Logger) error {
	if _, err := ensureCollection(app, logger, "site_settings", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "company_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "company_address"})
		c.Fields.Add(&core.TextField{Name: "company_phone"})
		c.Fields.Add(&core.EmailField{Name: "company_email"})
		c.Fields.Add(&core.TextField{Name: "company_gstin", Max: 15})
		c.Fields.Add(&core.TextField{Name: "bank_account_name"})
		c.Fields.Add(&core.TextField{Name: "bank_name"})
		c.Fields.Add(&core.TextField{Name: "bank_account_no"})
		c.Fields.Add(&core.TextField{Name: "bank_ifsc", Max: 11})
		c.Fields.Add(&core.TextField{Name: "bank_branch"})
		c.Fields.Add(&core.TextField{Name: "upi_id"})
		c.Fields.Add(&core.TextField{Name: "terms"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	}); err != nil {
		return err
	}

	if _, err := ensureCollection(app, logger, "quote_requests", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "mobile", Required: true})
		c.Fields.Add(&core.EmailField{Name: "email"})
		c.Fields.Add(&core.TextField{Name: "city"})
		c.Fields.Add(&core.TextField{Name: "message"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    []string{"new", "contacted", "quoted", "closed"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "quotation_no"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	}); err != nil {
		return err
	}

	if _, err := ensureCollection(app, logger, "reviews", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "customer_name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "rating", Required: true, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "comment"})
		c.Fields.Add(&core.BoolField{Name: "approved"})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	}); err != nil {
		return err
	}
	return nil
}

// ensureCollection returns the collection called name, creating it with the
// fields added by addFields when it does not exist yet.
func ensureCollection(app core.App, logger *zap.Logger, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		logger.Debug("collections: already exists", zap.String("collection", name))
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	logger.Info("collections: created", zap.String("collection", name), zap.String("id", collection.Id))
	return collection, nil
}
