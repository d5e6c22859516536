package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/supplyhub/supplyhub/app/models"
	"github.com/supplyhub/supplyhub/app/repositories"
	"github.com/supplyhub/supplyhub/internal/vendor"
	"github.com/supplyhub/supplyhub/pkg/logger"
)

// Outcome classifies what the reconciler did with one record.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeUpdated
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	default:
		return "skipped"
	}
}

// Reconciler applies normalized records against the catalog store, one record
// at a time so a bad record never blocks its neighbors.
type Reconciler struct {
	repo    *repositories.CatalogRepository
	profile vendor.Profile
}

func NewReconciler(repo *repositories.CatalogRepository, p vendor.Profile) *Reconciler {
	return &Reconciler{repo: repo, profile: p}
}

// ApplyCatalog upserts the category, product and variation a catalog record
// describes. Categories and products are get-or-create only; an existing
// variation follows the vendor's skip-vs-update policy.
func (r *Reconciler) ApplyCatalog(ctx context.Context, rec *CatalogRecord) (Outcome, error) {
	if rec.ProductNumber == "" || rec.ItemNumber == "" {
		return OutcomeSkipped, fmt.Errorf("record missing product or item number")
	}

	category, err := r.repo.GetOrCreateCategory(rec.CategoryName, "")
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("category %q: %w", rec.CategoryName, err)
	}

	product := &models.Product{
		ProductNumber:          rec.ProductNumber,
		BrandName:              rec.BrandName,
		ShortDescription:       rec.ShortDescription,
		FullFeatureDescription: rec.FullDescription,
		CategoryID:             category.ID,
	}
	if _, err := r.repo.GetOrCreateProduct(product); err != nil {
		return OutcomeSkipped, fmt.Errorf("product %q: %w", rec.ProductNumber, err)
	}

	variation := models.Variation{
		ItemNumber: rec.ItemNumber,
		ProductID:  product.ID,
		ColorName:  rec.ColorName,
		ColorCode:  rec.ColorCode,
		HexCode:    rec.HexCode,
		SizeCode:   rec.SizeCode,
		Size:       rec.Size,
		CaseQty:    rec.CaseQty,
		Weight:     rec.Weight,
		FrontImage: rec.FrontImage,
		BackImage:  rec.BackImage,
		SideImage:  rec.SideImage,
		GTIN:       rec.GTIN,
	}

	stored := variation
	created, err := r.repo.GetOrCreateVariation(&stored)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("variation %q: %w", rec.ItemNumber, err)
	}
	if created {
		return OutcomeCreated, nil
	}
	if r.profile.SkipExisting {
		return OutcomeSkipped, nil
	}
	if err := r.repo.OverwriteVariation(&variation); err != nil {
		return OutcomeSkipped, fmt.Errorf("variation %q: %w", rec.ItemNumber, err)
	}
	return OutcomeUpdated, nil
}

// ApplyInventory sets the stock quantity of the variation matching the record
// by item number and GTIN. A record with no matching variation is skipped and
// logged: inventory never creates catalog entities.
func (r *Reconciler) ApplyInventory(ctx context.Context, rec *InventoryRecord) (Outcome, error) {
	variation, err := r.repo.FindVariationByItemGTIN(rec.ItemNumber, rec.GTIN)
	if errors.Is(err, repositories.ErrVariationNotFound) {
		logger.WithCtx(ctx).Info("inventory record has no variation",
			slog.String("vendor", r.profile.Code),
			slog.String("item_number", rec.ItemNumber),
			slog.String("gtin", rec.GTIN))
		return OutcomeSkipped, nil
	}
	if err != nil {
		return OutcomeSkipped, err
	}

	qty := rec.Quantity
	variation.Quantity = &qty
	if err := r.repo.SaveVariation(variation); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeUpdated, nil
}

// ApplyPricing sets the price tiers of the variation matching the record by
// item number and GTIN. Unmatched records are skipped and logged, same as
// inventory.
func (r *Reconciler) ApplyPricing(ctx context.Context, rec *PricingRecord) (Outcome, error) {
	variation, err := r.repo.FindVariationByItemGTIN(rec.ItemNumber, rec.GTIN)
	if errors.Is(err, repositories.ErrVariationNotFound) {
		logger.WithCtx(ctx).Info("pricing record has no variation",
			slog.String("vendor", r.profile.Code),
			slog.String("item_number", rec.ItemNumber),
			slog.String("gtin", rec.GTIN))
		return OutcomeSkipped, nil
	}
	if err != nil {
		return OutcomeSkipped, err
	}

	variation.PricePerPiece = rec.Piece
	variation.PricePerDozen = rec.Dozen
	variation.PricePerCase = rec.Case
	variation.RetailPrice = rec.Retail
	if err := r.repo.SaveVariation(variation); err != nil {
		return OutcomeSkipped, err
	}
	return OutcomeUpdated, nil
}
