package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	agentpricingdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/domain"
	ratedomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/domain"
)

type quoteRequest struct {
	AgentID string `json:"agent_id"`

	// transport
	VehicleType string  `json:"vehicle_type"`
	DistanceKm  float64 `json:"distance_km"`

	// hotel
	City       string `json:"city"`
	StarRating int    `json:"star_rating"`
	RoomType   string `json:"room_type"`
	Nights     int    `json:"nights"`

	// flight
	OriginCode      string `json:"origin_code"`
	DestinationCode string `json:"destination_code"`
	CabinClass      string `json:"cabin_class"`
	AirlineCode     string `json:"airline_code"`

	// fallback-path percentages
	AgentCommissionPct float64 `json:"agent_commission_pct"`
	ProfitPct          float64 `json:"profit_pct"`
}

type quoteResponse struct {
	Quote   *ratedomain.BaseQuote          `json:"quote"`
	Tiers   *agentpricingdomain.PriceQuote `json:"tiers,omitempty"`
	AgentID string                         `json:"agent_id,omitempty"`
}

// QuoteTransport prices a ground transport leg and, when an agent id is given,
// attaches the tier suggestion computed from the quoted total.
func (s *Server) QuoteTransport(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.rateSvc.TransportQuote(c.Request.Context(), ratedomain.TransportCriteria{
		VehicleType:        req.VehicleType,
		DistanceKm:         req.DistanceKm,
		AgentCommissionPct: req.AgentCommissionPct,
		ProfitPct:          req.ProfitPct,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondQuote(c, quote, req.AgentID)
}

// QuoteHotel prices a hotel stay.
func (s *Server) QuoteHotel(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.rateSvc.HotelQuote(c.Request.Context(), ratedomain.HotelCriteria{
		City:               req.City,
		StarRating:         req.StarRating,
		RoomType:           req.RoomType,
		Nights:             req.Nights,
		AgentCommissionPct: req.AgentCommissionPct,
		ProfitPct:          req.ProfitPct,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondQuote(c, quote, req.AgentID)
}

// QuoteFlight prices a flight segment.
func (s *Server) QuoteFlight(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.rateSvc.FlightQuote(c.Request.Context(), ratedomain.FlightCriteria{
		OriginCode:         req.OriginCode,
		DestinationCode:    req.DestinationCode,
		CabinClass:         req.CabinClass,
		AirlineCode:        req.AirlineCode,
		AgentCommissionPct: req.AgentCommissionPct,
		ProfitPct:          req.ProfitPct,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.respondQuote(c, quote, req.AgentID)
}

func (s *Server) respondQuote(c *gin.Context, quote *ratedomain.BaseQuote, agentID string) {
	resp := quoteResponse{Quote: quote}

	if agentID = strings.TrimSpace(agentID); agentID != "" {
		tiers, err := s.pricingSvc.SuggestForAgent(c.Request.Context(), quote.TotalPrice, agentID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		resp.Tiers = tiers
		resp.AgentID = agentID
	}

	c.JSON(http.StatusOK, resp)
}

type suggestRequest struct {
	BasePrice float64 `json:"base_price"`
	AgentID   string  `json:"agent_id"`
}

// SuggestAgentPricing returns the three-tier suggestion for an agent.
func (s *Server) SuggestAgentPricing(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.pricingSvc.SuggestForAgent(c.Request.Context(), req.BasePrice, req.AgentID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

type suggestDemandRequest struct {
	BasePrice   float64 `json:"base_price"`
	DemandIndex int     `json:"demand_index"`
	Occupancy   string  `json:"occupancy"`
}

// SuggestDemandPricing returns the demand-aware tier suggestion used for
// public quoting where no agent rule applies.
func (s *Server) SuggestDemandPricing(c *gin.Context) {
	var req suggestDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	quote, err := s.pricingSvc.SuggestForDemand(c.Request.Context(), req.BasePrice, req.DemandIndex, req.Occupancy)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
