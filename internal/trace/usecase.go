// Package trace implements the user-triggered supply chain operations:
// upload, forward, mark available and purchase. Each applies the local
// mutation, appends the provenance ledger entry and pushes the remote
// stage change where the backend tracks one.
package trace

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/farmchainx/trace-engine/internal/ledger"
	"github.com/farmchainx/trace-engine/internal/model"
	"github.com/farmchainx/trace-engine/internal/remote/dto"
	"github.com/farmchainx/trace-engine/internal/store"
)

// ErrCropNotFound is returned when an operation references an unknown crop.
var ErrCropNotFound = errors.New("crop not found")

// ValidationError carries the per-field failures of a rejected crop draft.
type ValidationError struct {
	Fields model.ValidationErrors
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid crop draft: %d field(s) failed validation", len(e.Fields))
}

// Backend is the slice of the remote client the operations need.
type Backend interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (dto.ProductRow, error)
	CreateInventory(ctx context.Context, req dto.CreateInventoryRequest) (dto.InventoryRow, error)
	UpdateInventoryStage(ctx context.Context, inventoryID string, stage model.CropStatus) error
}

// Scorer supplies the AI quality signal attached to a crop at upload time.
type Scorer interface {
	Score(ctx context.Context, imageDataURL string) (dto.ScoreResponse, error)
}

// EventPublisher receives every appended ledger entry.
type EventPublisher interface {
	Publish(ctx context.Context, event model.TransactionEvent)
}

// fallbackAIScore is attached when the scoring service is unreachable.
const fallbackAIScore = 80

// Service executes the composed domain operations against the store.
// backend, scorer and publisher may be nil; the engine then runs local-only.
type Service struct {
	store     *store.Store
	backend   Backend
	scorer    Scorer
	publisher EventPublisher
	logger    *zap.Logger
	nowFn     func() time.Time
}

func NewService(st *store.Store, backend Backend, scorer Scorer, publisher EventPublisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:     st,
		backend:   backend,
		scorer:    scorer,
		publisher: publisher,
		logger:    logger,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// UploadCrop validates the draft, scores its image, registers the crop with
// the backend and records it locally with a fresh QR reference. The
// finalized record (including the generated id) is returned.
func (s *Service) UploadCrop(ctx context.Context, farmer model.User, draft model.Crop) (model.Crop, error) {
	if errs := model.ValidateCropDraft(draft); !errs.Valid() {
		return model.Crop{}, ValidationError{Fields: errs}
	}

	if draft.Image == "" {
		draft.Image = model.DefaultCropImage
	}
	s.attachScore(ctx, &draft)

	if s.backend != nil {
		if err := s.registerRemote(ctx, farmer, &draft); err != nil {
			s.store.PushNotification(store.Notification{
				Type:        "error",
				Message:     "Crop upload failed",
				Description: err.Error(),
			})
			return model.Crop{}, err
		}
	}

	now := s.nowFn().Format(time.RFC3339)
	draft.Status = model.StatusHarvested
	draft.FarmerID = farmer.ID
	draft.FarmerName = farmer.Name
	draft.CreatedAt = now
	if draft.QRCode == "" {
		draft.QRCode = model.EightDigitCode()
	}

	crop := s.store.RecordCropUpload(draft)
	s.appendEvent(ctx, model.TransactionEvent{
		Type:     model.EventCropUpload,
		CropID:   crop.ID,
		UserID:   farmer.ID,
		UserName: farmer.Name,
		Details:  fmt.Sprintf("Uploaded %s", crop.Name),
	})
	s.store.PushNotification(store.Notification{
		Type:        "success",
		Message:     "Crop uploaded successfully!",
		Description: "Your crop has been added to the system and QR code has been generated.",
	})
	return crop, nil
}

// attachScore asks the scorer for a verdict on the uploaded image. A
// missing or failing scorer degrades to a deterministic default score.
func (s *Service) attachScore(ctx context.Context, draft *model.Crop) {
	if draft.AIScore != nil {
		return
	}
	if s.scorer != nil && draft.Image != "" && draft.Image != model.DefaultCropImage {
		res, err := s.scorer.Score(ctx, draft.Image)
		if err == nil && res.AIScore != nil {
			draft.AIScore = res.AIScore
			if res.QualityLabel != "" {
				draft.AIVerdict = model.String(res.QualityLabel)
			}
			return
		}
		if err != nil {
			s.logger.Warn("AI scoring unavailable, using fallback score", zap.Error(err))
		}
	}
	draft.AIScore = model.Float(fallbackAIScore)
}

// registerRemote creates the product and inventory halves of the upload and
// adopts the backend's ids as the crop identity.
func (s *Service) registerRemote(ctx context.Context, farmer model.User, draft *model.Crop) error {
	farmerPrice := float64(0)
	if draft.FarmerPrice != nil {
		farmerPrice = *draft.FarmerPrice
	}

	product, err := s.backend.CreateProduct(ctx, dto.CreateProductRequest{
		Name:         draft.Name,
		CropType:     draft.Name,
		QuantityKg:   float64(draft.Quantity),
		QualityGrade: "A",
		AIScore:      draft.AIScore,
		AIVerdict:    draft.AIVerdict,
		HarvestDate:  draft.HarvestedDate,
		Location:     draft.Location,
		Description:  draft.Description,
		ImageURL:     draft.Image,
		Price:        farmerPrice,
		Unit:         "kg",
	})
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	if product.ID == 0 {
		return errors.New("backend returned no product id")
	}

	ownerID, err := parseOwnerID(farmer.ID)
	if err != nil {
		return fmt.Errorf("invalid farmer profile: %w", err)
	}

	inv, err := s.backend.CreateInventory(ctx, dto.CreateInventoryRequest{
		ProductID: product.ID,
		OwnerID:   ownerID,
		Quantity:  draft.Quantity,
		Stage:     string(model.StatusHarvested),
	})
	if err != nil {
		return fmt.Errorf("create inventory: %w", err)
	}
	if inv.ID == 0 {
		return errors.New("backend returned no inventory id")
	}

	draft.ID = fmt.Sprintf("%d", inv.ID)
	draft.InventoryID = draft.ID
	draft.ProductID = fmt.Sprintf("%d", product.ID)
	return nil
}

// ForwardToRetailer advances a crop from the distributor to a named
// retailer: remote stage push, local status change, ledger entry.
func (s *Service) ForwardToRetailer(ctx context.Context, user model.User, cropID, retailerName string) error {
	crop, ok := s.store.FindCrop(cropID)
	if !ok {
		return ErrCropNotFound
	}

	s.pushStage(ctx, crop, model.StatusAtRetailer)

	status := model.StatusAtRetailer
	s.store.UpdateCrop(store.CropPatch{ID: crop.ID, Status: &status})
	s.appendEvent(ctx, model.TransactionEvent{
		Type:     model.EventForwardToRetailer,
		CropID:   crop.ID,
		UserID:   user.ID,
		UserName: user.Name,
		Details:  fmt.Sprintf("Forwarded %s to %s", crop.Name, retailerName),
	})
	return nil
}

// MarkAvailable puts a crop up for sale at the given retail price (nil
// keeps existing pricing).
func (s *Service) MarkAvailable(ctx context.Context, user model.User, cropID string, price *float64) error {
	crop, ok := s.store.FindCrop(cropID)
	if !ok {
		return ErrCropNotFound
	}

	s.pushStage(ctx, crop, model.StatusAvailableForSale)

	status := model.StatusAvailableForSale
	patch := store.CropPatch{ID: crop.ID, Status: &status}
	if price != nil {
		patch.RetailerPrice = price
		patch.Price = price
	}
	s.store.UpdateCrop(patch)

	details := fmt.Sprintf("Marked %s as available for sale", crop.Name)
	if price != nil {
		details = fmt.Sprintf("%s at ₹%.2f", details, *price)
	}
	s.appendEvent(ctx, model.TransactionEvent{
		Type:     model.EventMarkAvailable,
		CropID:   crop.ID,
		UserID:   user.ID,
		UserName: user.Name,
		Details:  details,
	})
	return nil
}

// Purchase reduces a crop's quantity by the purchased amount, clamped at
// zero, and records the purchase with its total. The finalized ledger entry
// is returned.
func (s *Service) Purchase(ctx context.Context, user model.User, cropID string, quantity int) (model.TransactionEvent, error) {
	if quantity <= 0 {
		return model.TransactionEvent{}, fmt.Errorf("purchase quantity must be positive, got %d", quantity)
	}
	crop, ok := s.store.FindCrop(cropID)
	if !ok {
		return model.TransactionEvent{}, ErrCropNotFound
	}

	remaining := crop.Quantity - quantity
	if remaining < 0 {
		remaining = 0
	}
	s.store.UpdateCrop(store.CropPatch{ID: crop.ID, Quantity: &remaining})

	total := float64(quantity) * crop.EffectivePrice()
	event := s.appendEvent(ctx, model.TransactionEvent{
		Type:        model.EventPurchase,
		CropID:      crop.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		Details:     fmt.Sprintf("Purchased %d units of %s", quantity, crop.Name),
		Quantity:    quantity,
		TotalAmount: total,
	})
	s.store.PushNotification(store.Notification{
		Type:        "success",
		Message:     "Crop Purchased Successfully!",
		Description: fmt.Sprintf("You have successfully purchased %d units of %s for ₹%.2f.", quantity, crop.Name, total),
	})
	return event, nil
}

// Crops returns a copy of the current crop collection.
func (s *Service) Crops() []model.Crop {
	return s.store.Crops()
}

// Journey reconstructs the timeline for one crop from the ledger.
func (s *Service) Journey(cropID string) ([]ledger.Step, error) {
	crop, ok := s.store.FindCrop(cropID)
	if !ok {
		return nil, ErrCropNotFound
	}
	return ledger.Journey(crop, s.store.LedgerFor(cropID), s.nowFn()), nil
}

// pushStage mirrors a status change to the backend. Push failures are
// logged and do not block the local mutation; the next reconciliation pass
// converges the stage.
func (s *Service) pushStage(ctx context.Context, crop model.Crop, stage model.CropStatus) {
	if s.backend == nil {
		return
	}
	inventoryID := crop.InventoryID
	if inventoryID == "" {
		inventoryID = crop.ID
	}
	if err := s.backend.UpdateInventoryStage(ctx, inventoryID, stage); err != nil {
		s.logger.Warn("failed to push stage change",
			zap.String("crop_id", crop.ID),
			zap.String("stage", string(stage)),
			zap.Error(err))
	}
}

func (s *Service) appendEvent(ctx context.Context, event model.TransactionEvent) model.TransactionEvent {
	finalized := s.store.AppendLedgerEntry(event)
	if s.publisher != nil {
		s.publisher.Publish(ctx, finalized)
	}
	return finalized
}

func parseOwnerID(id string) (int64, error) {
	owner, err := strconv.ParseInt(id, 10, 64)
	if err != nil || owner == 0 {
		return 0, fmt.Errorf("owner id %q is not numeric", id)
	}
	return owner, nil
}
