package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Client implements RouteEstimator against the external routing service.
//
// It coordinates:
//   - The optimize request/response contract (topN=1, non-binding hints)
//   - A circuit breaker so a down service stops eating the 10s timeout
//   - An optional estimate cache consulted before the network call
//   - The deterministic offline fallback for every failure mode
//
// The client never retries and never surfaces a transport failure to its
// caller: every Estimate call on a non-empty stop list produces a value.
// It is safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	apiKey  string
	breaker *gobreaker.CircuitBreaker
	cache   ports.EstimateCache
}

// maxDistance is sent large enough that the service never filters on it.
const maxDistanceHint = 1_000_000_000

func NewClient(baseURL, apiKey string, cache ports.EstimateCache) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("routing base URL is empty")
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "routing-service",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("breaker=%s state %s -> %s", name, from, to)
		},
	})

	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		breaker: breaker,
		cache:   cache,
	}, nil
}

type optimizeStop struct {
	ID      int    `json:"id"`
	Company string `json:"company"`
	Address string `json:"address"`
	Skids   int    `json:"skids"`
}

type optimizeRequest struct {
	Deliveries  []optimizeStop `json:"deliveries"`
	MaxDistance float64        `json:"maxDistance"`
	MaxSkids    int            `json:"maxSkids"`
	TopN        int            `json:"topN"`
}

type optimizeCandidate struct {
	DurationMin float64  `json:"Duration_min"`
	DistanceKm  float64  `json:"Distance_km"`
	Order       []string `json:"Order"`
}

// Estimate returns route metrics for the candidate stop list.
//
// The primary path asks the routing service for its single best visiting
// order. Any failure (transport error, non-2xx status, bad payload, empty
// candidate list, open breaker) degrades to the deterministic fallback.
func (c *Client) Estimate(ctx context.Context, stops []*domain.Delivery) (_ ports.RouteEstimate, err error) {
	defer obs.Time(ctx, "routing.Estimate")(&err)

	if len(stops) == 0 {
		return ports.RouteEstimate{}, errors.New("estimate: stop list must be non-empty")
	}

	key := cacheKey(stops)
	if c.cache != nil {
		est, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Printf("estimate cache read failed: %v", err)
		} else if ok {
			return est, nil
		}
	}

	res, err := c.breaker.Execute(func() (any, error) {
		return c.optimize(ctx, stops)
	})
	if err != nil {
		log.Printf("routing estimate failed, using fallback: stops=%d err=%v", len(stops), err)
		return Fallback(len(stops)), nil
	}

	est := res.(ports.RouteEstimate)
	if c.cache != nil {
		if err := c.cache.Put(ctx, key, est); err != nil {
			log.Printf("estimate cache write failed: %v", err)
		}
	}

	return est, nil
}

// optimize performs one request against the routing service and maps the
// best candidate to a RouteEstimate.
func (c *Client) optimize(ctx context.Context, stops []*domain.Delivery) (ports.RouteEstimate, error) {
	reqStops := make([]optimizeStop, 0, len(stops))
	skidSum := 0
	for _, s := range stops {
		reqStops = append(reqStops, optimizeStop{
			ID:      s.ID,
			Company: s.Company,
			Address: s.Address,
			Skids:   s.Skids,
		})
		skidSum += s.Skids
	}

	// maxSkids and maxDistance are non-binding hints; the service does not
	// enforce them and the engine performs its own constraint checks.
	bodyObj := optimizeRequest{
		Deliveries:  reqStops,
		MaxDistance: maxDistanceHint,
		MaxSkids:    skidSum,
		TopN:        1,
	}

	payload, err := json.Marshal(bodyObj)
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("marshal optimize request: %w", err)
	}

	endpoint := c.baseURL + "/optimize"
	req, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("optimize request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("optimize request failed: %w", err)
	}
	defer resp.Body.Close()

	var candidates []optimizeCandidate
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return ports.RouteEstimate{}, fmt.Errorf("decode optimize response: %w", err)
	}
	if len(candidates) == 0 {
		return ports.RouteEstimate{}, errors.New("optimize returned no candidates")
	}

	best := candidates[0]
	return ports.RouteEstimate{
		Hours:      best.DurationMin / 60,
		DistanceKm: best.DistanceKm,
		Order:      best.Order,
	}, nil
}

// cacheKey fingerprints a stop list independent of insertion order: the
// optimizer reorders stops anyway, so {A,B} and {B,A} share an estimate.
func cacheKey(stops []*domain.Delivery) string {
	tokens := make([]string, 0, len(stops))
	for _, s := range stops {
		addr := strings.Join(strings.Fields(s.Address), " ")
		tokens = append(tokens, fmt.Sprintf("%d|%s|%d", s.ID, addr, s.Skids))
	}
	sort.Strings(tokens)
	return strings.Join(tokens, ";")
}
