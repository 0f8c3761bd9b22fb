package handlers

import (
	"stockpos/internal/domain/catalogs/coin"
	"stockpos/internal/infrastructure/http/v1/dto"
)

// CoinHTTPHandler is a shorthand alias for the configured generic handler.
type CoinHTTPHandler = CatalogHandler[
	*coin.Coin,
	dto.CreateCoinRequest,
	dto.UpdateCoinRequest,
]

// NewCoinHandler wires the Coin catalog into the generic handler.
func NewCoinHandler(
	base *BaseHandler,
	service *coin.Service,
) *CoinHTTPHandler {

	config := CatalogHandlerConfig[
		*coin.Coin,
		dto.CreateCoinRequest,
		dto.UpdateCoinRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "coin",

		MapCreateDTO: func(req dto.CreateCoinRequest) *coin.Coin {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateCoinRequest, existing *coin.Coin) *coin.Coin {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *coin.Coin) any {
			return dto.FromCoin(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
