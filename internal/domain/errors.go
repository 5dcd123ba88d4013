package domain

import "errors"

var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrForbidden indicates that the user is not authorized to perform the action.
	ErrForbidden = errors.New("action forbidden")
	// ErrInvalidInput indicates that the provided input data is invalid.
	ErrInvalidInput = errors.New("invalid input data")
	// ErrDuplicateFavorite indicates that the user has already favorited the ad.
	ErrDuplicateFavorite = errors.New("favorite already exists for this user and ad")
	// ErrDuplicateReview indicates that the user has already reviewed the seller.
	ErrDuplicateReview = errors.New("review already exists for this reviewer and seller")
	// ErrAlreadyBoosted indicates that the target ad carries an unexpired boost.
	ErrAlreadyBoosted = errors.New("ad is already boosted")
	// ErrBoostUnavailable indicates that the user has no top up credit right now.
	ErrBoostUnavailable = errors.New("no top ups available")
	// ErrRepository indicates a generic data persistence error.
	ErrRepository = errors.New("repository error")
)
