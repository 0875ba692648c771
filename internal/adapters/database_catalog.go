package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront-catalog/internal/ports"
	"storefront-catalog/internal/types"
)

const DefaultQueryTimeout = 2 * time.Second

// ProductRow is one row of the storefront products table.
type ProductRow struct {
	ID          string         `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string         `json:"name"`
	Brand       string         `json:"brand"`
	Description string         `json:"description"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"images"`
	Badge       string         `json:"badge"`
	Price       float64        `json:"price"`
	Category    string         `gorm:"index" json:"category"`
	Slug        string         `gorm:"index" json:"slug"`
	Pricing     datatypes.JSON `gorm:"type:jsonb" json:"pricing"`
	Position    int            `gorm:"default:0" json:"position"`
}

func (ProductRow) TableName() string { return "products" }

// DatabaseCatalog reads products from Postgres. Every query runs under its
// own timeout.
type DatabaseCatalog struct {
	db      *gorm.DB
	timeout time.Duration
}

func OpenDatabaseCatalog(dsn string, timeout time.Duration) (*DatabaseCatalog, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("failed to connect to product database").
			WithCause(err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxIdleConns(4)
		sqlDB.SetMaxOpenConns(16)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return NewDatabaseCatalog(db, timeout), nil
}

func NewDatabaseCatalog(db *gorm.DB, timeout time.Duration) *DatabaseCatalog {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &DatabaseCatalog{db: db, timeout: timeout}
}

func (c *DatabaseCatalog) Name() types.SourceName { return types.SourceDatabase }

// Migrate creates or updates the products table.
func (c *DatabaseCatalog) Migrate(ctx context.Context) error {
	if err := c.db.WithContext(ctx).AutoMigrate(&ProductRow{}); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to migrate products table").
			WithCause(err)
	}
	return nil
}

// Upsert writes rows, replacing any existing row with the same ID.
func (c *DatabaseCatalog) Upsert(ctx context.Context, rows ...ProductRow) error {
	if len(rows) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.db.WithContext(ctx).Save(&rows).Error; err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to store products").
			WithCause(err)
	}
	return nil
}

func (c *DatabaseCatalog) GetByID(ctx context.Context, id string) (types.Record, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var row ProductRow
	err := c.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to query product " + id).
			WithCause(err)
	}
	return RowRecord(row), true, nil
}

func (c *DatabaseCatalog) ListAll(ctx context.Context) ([]types.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rows []ProductRow
	if err := c.db.WithContext(ctx).Order("position ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list products").
			WithCause(err)
	}
	records := make([]types.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, RowRecord(row))
	}
	return records, nil
}

func (c *DatabaseCatalog) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// RowRecord converts a row into the loosely typed record the normalizer
// consumes. Unparseable JSON columns are dropped.
func RowRecord(row ProductRow) types.Record {
	record := types.Record{
		"id":          row.ID,
		"name":        row.Name,
		"brand":       row.Brand,
		"description": row.Description,
		"badge":       row.Badge,
		"price":       row.Price,
		"category":    row.Category,
		"slug":        row.Slug,
	}
	if len(row.Images) > 0 {
		var images []string
		if err := json.Unmarshal(row.Images, &images); err != nil {
			log.Debug().Err(err).Str("id", row.ID).Msg("ignoring malformed images column")
		} else {
			record["images"] = images
		}
	}
	if len(row.Pricing) > 0 {
		var pricing map[string]any
		if err := json.Unmarshal(row.Pricing, &pricing); err != nil {
			log.Debug().Err(err).Str("id", row.ID).Msg("ignoring malformed pricing column")
		} else if pricing != nil {
			record["pricing"] = pricing
		}
	}
	return record
}

var _ ports.CatalogSourcePort = (*DatabaseCatalog)(nil)
