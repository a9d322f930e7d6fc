package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/models"
	"github.com/arushi-dev/vastra-api/pincode"
)

// PincodeChecker is the slice of the serviceability API the address flow needs.
type PincodeChecker interface {
	Lookup(ctx context.Context, pin string) (*pincode.Serviceability, error)
}

type AddressService struct {
	db      *gorm.DB
	pincode PincodeChecker
	log     *zap.Logger
}

func NewAddressService(db *gorm.DB, pc PincodeChecker, log *zap.Logger) *AddressService {
	return &AddressService{db: db, pincode: pc, log: log}
}

type CreateAddressInput struct {
	UserID  string
	Name    string
	Email   string
	Phone   string
	Line1   string
	Line2   string
	City    string
	State   string
	Pincode string
}

// CreateAddress inserts an address after the serviceability check passes. For
// logged-in users the name/email/phone snapshot comes from the profile at this
// moment; guests supply them directly. A non-serviceable pincode inserts
// nothing.
func (s *AddressService) CreateAddress(ctx context.Context, in CreateAddressInput) (*models.Address, *Error) {
	if in.UserID == "" {
		return nil, errf(KindUnauthenticated, "an identity is required to save an address")
	}
	if in.Line1 == "" || in.City == "" || in.State == "" {
		return nil, errf(KindInvalid, "line1, city and state are required")
	}
	if !pincode.Valid(in.Pincode) {
		return nil, errf(KindInvalid, "pincode must be a valid 6-digit code")
	}

	// Snapshot identity fields from the profile when one exists; edits to the
	// profile later must not rewrite shipping history.
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", in.UserID).Error
	switch {
	case err == nil:
		in.Name, in.Email, in.Phone = user.Name, user.Email, user.Phone
	case errors.Is(err, gorm.ErrRecordNotFound):
		if in.Name == "" || in.Email == "" || in.Phone == "" {
			return nil, errf(KindInvalid, "name, email and phone are required")
		}
	default:
		return nil, internal(s.log, "create address: load user", err)
	}

	svc, err := s.pincode.Lookup(ctx, in.Pincode)
	if err != nil {
		s.log.Warn("serviceability check failed", zap.String("pincode", in.Pincode), zap.Error(err))
		return nil, errf(KindInternal, "could not verify serviceability, please try again later")
	}
	if !svc.Serviceable {
		return nil, errf(KindNotServiceable, "pincode %s is not serviceable", in.Pincode)
	}

	address := &models.Address{
		UserID:  in.UserID,
		Name:    in.Name,
		Email:   in.Email,
		Phone:   in.Phone,
		Line1:   in.Line1,
		Line2:   in.Line2,
		City:    in.City,
		State:   in.State,
		Pincode: in.Pincode,
	}
	if err := s.db.WithContext(ctx).Create(address).Error; err != nil {
		return nil, internal(s.log, "create address: insert", err)
	}
	return address, nil
}

// ListAddresses returns the identity's saved addresses.
func (s *AddressService) ListAddresses(ctx context.Context, userID string) ([]models.Address, *Error) {
	if userID == "" {
		return nil, errf(KindUnauthenticated, "an identity is required")
	}
	var addresses []models.Address
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&addresses).Error; err != nil {
		return nil, internal(s.log, "list addresses", err)
	}
	return addresses, nil
}

// DeleteAddress removes an address the identity owns. Ownership is part of
// the WHERE clause, so a foreign id deletes nothing.
func (s *AddressService) DeleteAddress(ctx context.Context, userID string, addressID uint) *Error {
	if userID == "" {
		return errf(KindUnauthenticated, "an identity is required")
	}
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, userID).
		Delete(&models.Address{})
	if res.Error != nil {
		return internal(s.log, "delete address", res.Error)
	}
	if res.RowsAffected == 0 {
		return errf(KindNotFound, "address not found")
	}
	return nil
}
