package recipe

import (
	"Recipe-Catalog/domain"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

type PageRequest struct {
	Page int
	Size int
}

func ParsePage(rawPage, rawSize string) (PageRequest, error) {
	req := PageRequest{Page: 1, Size: DefaultPageSize}

	if rawPage = strings.TrimSpace(rawPage); rawPage != "" {
		page, err := strconv.Atoi(rawPage)
		if err != nil || page < 1 {
			return PageRequest{}, fmt.Errorf("%w: page must be an integer >= 1, got %q", domain.ErrValidation, rawPage)
		}
		req.Page = page
	}

	if rawSize = strings.TrimSpace(rawSize); rawSize != "" {
		size, err := strconv.Atoi(rawSize)
		if err != nil || size < 1 || size > MaxPageSize {
			return PageRequest{}, fmt.Errorf("%w: size must be an integer between 1 and %d, got %q",
				domain.ErrValidation, MaxPageSize, rawSize)
		}
		req.Size = size
	}

	if req.Page-1 > math.MaxInt/req.Size {
		return PageRequest{}, fmt.Errorf("%w: page %d is out of range for size %d", domain.ErrValidation, req.Page, req.Size)
	}

	return req, nil
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}

func NewRecipePage(items []domain.RecipeView, total int64, req PageRequest) domain.RecipePage {
	if items == nil {
		items = []domain.RecipeView{}
	}
	return domain.RecipePage{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  req.Size,
		Pages: int((total + int64(req.Size) - 1) / int64(req.Size)),
	}
}
