package bidrepo

import (
	"context"
	"errors"

	"clearance/internal/core/domain/model/bid"
	"clearance/internal/core/domain/model/kernel"
	"clearance/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBidRepository implements BidRepository using GORM.
type GormBidRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id int64, aggregate any)
}

// NewGormBidRepository creates a new GORM bid repository.
func NewGormBidRepository(db *gorm.DB, tracker aggregateTracker) *GormBidRepository {
	return &GormBidRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bid and assigns the store identity back onto the entity.
func (r *GormBidRepository) Add(ctx context.Context, entity *bid.Bid) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := entity.AssignID(dto.ID); err != nil {
		return err
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Update saves an existing bid to the database.
func (r *GormBidRepository) Update(ctx context.Context, entity *bid.Bid) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	result := r.db.WithContext(ctx).Model(&BidDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Get retrieves a bid by ID.
func (r *GormBidRepository) Get(ctx context.Context, id int64) (*bid.Bid, error) {
	var dto BidDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bid", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves every bid submitted against an order, ordered by id.
func (r *GormBidRepository) GetByOrder(ctx context.Context, orderID int64) ([]*bid.Bid, error) {
	var dtos []BidDTO
	if err := r.db.WithContext(ctx).Order("id").Find(&dtos, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByOrderAndBroker retrieves one broker's bids against an order.
func (r *GormBidRepository) GetByOrderAndBroker(
	ctx context.Context, orderID int64, brokerID kernel.UUID,
) ([]*bid.Bid, error) {
	var dtos []BidDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "order_id = ? AND broker_id = ?", orderID, brokerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// Delete removes the bids with the given identifiers.
func (r *GormBidRepository) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&BidDTO{}, "id IN ?", ids).Error
}

// SetJobHandle records the scheduled reminder's handle on the bid row.
// Runs outside the transition transaction, after scheduling succeeded.
func (r *GormBidRepository) SetJobHandle(ctx context.Context, id int64, handle kernel.UUID) error {
	raw := handle.Bytes()
	result := r.db.WithContext(ctx).Model(&BidDTO{}).Where("id = ?", id).Update("job_handle", &raw)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("bid", id)
	}
	return nil
}

func toDomainSlice(dtos []BidDTO) ([]*bid.Bid, error) {
	bids := make([]*bid.Bid, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, nil
}
