package domain

import "github.com/pkg/errors"

var ErrOrderNotFound = errors.New("order not found")
