// Package seed bootstraps the reference directory tables at startup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"

	directorydomain "github.com/kmurdhar/PrinterManagementSystem/internal/directory/domain"
)

var defaultPrinters = []directorydomain.Printer{
	{PrinterName: "HP LaserJet", Location: "Front Office", Model: "HP LaserJet Pro M404", CostPerPage: 0.03},
	{PrinterName: "Canon ImageRunner", Location: "Copy Room", Model: "Canon iR-ADV C3530", CostPerPage: 0.08},
}

var defaultUsers = []directorydomain.User{
	{UserName: "admin", FullName: "Administrator", Department: "IT"},
}

// EnsureDirectory seeds the users and printers lookup tables when they are
// empty. Safe to run on every startup; existing rows are left untouched. The
// directory is descriptive only and is never enforced against job records.
func EnsureDirectory(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePrinters(ctx, tx, node); err != nil {
			return err
		}
		return ensureUsers(ctx, tx, node)
	})
}

func ensurePrinters(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&directorydomain.Printer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, printer := range defaultPrinters {
		printer.ID = node.Generate()
		printer.CreatedAt = now
		if err := tx.WithContext(ctx).Create(&printer).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureUsers(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	var count int64
	if err := tx.WithContext(ctx).Model(&directorydomain.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, user := range defaultUsers {
		user.ID = node.Generate()
		user.CreatedAt = now
		if err := tx.WithContext(ctx).Create(&user).Error; err != nil {
			return err
		}
	}
	return nil
}
