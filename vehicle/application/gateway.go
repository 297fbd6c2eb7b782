package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"vin-gateway/vehicle/domain"
)

const (
	opDecode = "decode"
	opCreate = "create"
)

// GatewayDeps são os estados do processo injetados no Gateway.
// Criados uma vez na subida; nada aqui precisa de teardown.
type GatewayDeps struct {
	Cache    domain.DecodeCache
	Limiter  domain.Limiter
	Client   domain.DecodeClient
	Registry domain.VehicleRegistry
	Orgs     domain.OrgValidator

	// Stats é opcional.
	Stats domain.StatsStore
	// Clock é opcional (time.Now).
	Clock func() time.Time
	// Logger é opcional (slog.Default()).
	Logger *slog.Logger
}

// Gateway orquestra cache, limiter e cliente upstream.
//
// Requisições concorrentes para o mesmo VIN fora do cache compartilham uma
// única chamada upstream (singleflight); a marca é removida ao terminar, com
// sucesso ou falha.
type Gateway struct {
	cache    domain.DecodeCache
	limiter  domain.Limiter
	client   domain.DecodeClient
	registry domain.VehicleRegistry
	orgs     domain.OrgValidator
	stats    domain.StatsStore
	now      func() time.Time
	logger   *slog.Logger

	flights singleflight.Group
}

func NewGateway(d GatewayDeps) (*Gateway, error) {
	switch {
	case d.Cache == nil:
		return nil, errors.New("gateway: cache is required")
	case d.Limiter == nil:
		return nil, errors.New("gateway: limiter is required")
	case d.Client == nil:
		return nil, errors.New("gateway: decode client is required")
	case d.Registry == nil:
		return nil, errors.New("gateway: registry is required")
	case d.Orgs == nil:
		return nil, errors.New("gateway: org validator is required")
	}
	g := &Gateway{
		cache:    d.Cache,
		limiter:  d.Limiter,
		client:   d.Client,
		registry: d.Registry,
		orgs:     d.Orgs,
		stats:    d.Stats,
		now:      d.Clock,
		logger:   d.Logger,
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	return g, nil
}

// flightResult é o que uma chamada compartilhada devolve aos que esperam.
type flightResult struct {
	vehicle domain.DecodedVehicle
	// cached indica que outra flight preencheu o cache antes desta consultar o limiter.
	cached bool
}

// Decode devolve o veículo decodificado para o VIN.
//
// Erros: ErrInvalidVIN, ErrRateLimited, ErrUpstreamUnavailable. Quando o
// provedor não conhece o VIN, devolve (e grava no cache) um veículo com todos
// os campos "Unknown".
func (g *Gateway) Decode(ctx context.Context, raw string) (domain.DecodedVehicle, error) {
	vin, err := domain.ParseVIN(raw)
	if err != nil {
		g.record(ctx, opDecode, "", domain.OutcomeInvalid)
		return domain.DecodedVehicle{}, err
	}

	v, err := g.decode(ctx, opDecode, vin)
	if errors.Is(err, domain.ErrNotFoundUpstream) {
		// no decode, VIN desconhecido é resposta válida e vai para o cache
		v = domain.UnknownVehicle()
		if err := g.cache.Put(ctx, vin, v); err != nil {
			g.logger.Warn("decode cache write failed", "vin", vin, "error", err)
		}
		return v, nil
	}
	return v, err
}

// CreateVehicle decodifica o VIN e registra o veículo para a organização.
//
// A validação de VIN/org e a checagem de duplicidade acontecem antes de
// qualquer acesso a cache, limiter ou upstream. ErrNotFoundUpstream só aparece
// com o cache frio; um "Unknown" já cacheado pelo Decode é registrado como está.
func (g *Gateway) CreateVehicle(ctx context.Context, raw, org string) (domain.VehicleRecord, error) {
	vin, err := domain.ParseVIN(raw)
	if err != nil {
		g.record(ctx, opCreate, "", domain.OutcomeInvalid)
		createResults.add(ctx, "invalid_vin")
		return domain.VehicleRecord{}, err
	}
	if !g.orgs.IsKnown(org) {
		g.record(ctx, opCreate, vin, domain.OutcomeInvalid)
		createResults.add(ctx, "invalid_org")
		return domain.VehicleRecord{}, fmt.Errorf("%w: %q", domain.ErrInvalidOrg, org)
	}
	if g.registry.Exists(vin) {
		createResults.add(ctx, "duplicate")
		return domain.VehicleRecord{}, fmt.Errorf("%w: %s", domain.ErrDuplicateVehicle, vin)
	}

	v, err := g.decode(ctx, opCreate, vin)
	if err != nil {
		createResults.add(ctx, "decode_failed")
		return domain.VehicleRecord{}, err
	}

	rec := domain.NewVehicleRecord(vin, v, org)
	if err := g.registry.Insert(rec); err != nil {
		// outra requisição criou o mesmo VIN enquanto decodificávamos
		createResults.add(ctx, "duplicate")
		return domain.VehicleRecord{}, err
	}
	createResults.add(ctx, "created")
	g.logger.Info("vehicle created", "vin", vin, "org", org)
	return rec, nil
}

// Vehicle devolve o veículo registrado, sem tocar no upstream.
func (g *Gateway) Vehicle(raw string) (domain.VehicleRecord, error) {
	vin, err := domain.ParseVIN(raw)
	if err != nil {
		return domain.VehicleRecord{}, err
	}
	rec, ok := g.registry.Get(vin)
	if !ok {
		return domain.VehicleRecord{}, fmt.Errorf("%w: %s", domain.ErrVehicleNotFound, vin)
	}
	return rec, nil
}

// decode assume VIN válido. ErrNotFoundUpstream é devolvido como está;
// cada caminho decide o que fazer com ele.
func (g *Gateway) decode(ctx context.Context, op string, vin domain.VIN) (domain.DecodedVehicle, error) {
	if v, ok := g.cached(ctx, vin); ok {
		g.record(ctx, op, vin, domain.OutcomeCacheHit)
		return v, nil
	}

	res, err, shared := g.flights.Do(string(vin), func() (any, error) {
		// a chamada compartilhada não é abortada se quem a iniciou desistir
		return g.fetch(context.WithoutCancel(ctx), vin)
	})
	if shared {
		g.logger.Debug("decode shared in-flight upstream call", "vin", vin)
	}

	switch {
	case err == nil:
		fr := res.(flightResult)
		if fr.cached {
			g.record(ctx, op, vin, domain.OutcomeCacheHit)
		} else {
			g.record(ctx, op, vin, domain.OutcomeUpstream)
		}
		return fr.vehicle, nil
	case errors.Is(err, domain.ErrRateLimited):
		g.record(ctx, op, vin, domain.OutcomeRateLimited)
	case errors.Is(err, domain.ErrNotFoundUpstream):
		g.record(ctx, op, vin, domain.OutcomeNotFound)
	default:
		g.record(ctx, op, vin, domain.OutcomeUpstreamError)
	}
	return domain.DecodedVehicle{}, err
}

func (g *Gateway) fetch(ctx context.Context, vin domain.VIN) (flightResult, error) {
	if v, ok := g.cached(ctx, vin); ok {
		return flightResult{vehicle: v, cached: true}, nil
	}

	if !g.limiter.TryAcquire(g.now()) {
		return flightResult{}, fmt.Errorf("%w: %s", domain.ErrRateLimited, vin)
	}

	v, err := g.client.Decode(ctx, vin)
	if err != nil {
		if errors.Is(err, domain.ErrNotFoundUpstream) {
			return flightResult{}, err
		}
		g.logger.Warn("upstream decode failed", "vin", vin, "error", err)
		return flightResult{}, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}

	if err := g.cache.Put(ctx, vin, v); err != nil {
		g.logger.Warn("decode cache write failed", "vin", vin, "error", err)
	}
	return flightResult{vehicle: v}, nil
}

// cached trata erro de leitura do cache como miss: o cache é só otimização.
func (g *Gateway) cached(ctx context.Context, vin domain.VIN) (domain.DecodedVehicle, bool) {
	v, ok, err := g.cache.Get(ctx, vin)
	if err != nil {
		g.logger.Warn("decode cache read failed", "vin", vin, "error", err)
		return domain.DecodedVehicle{}, false
	}
	return v, ok
}

func (g *Gateway) record(ctx context.Context, op string, vin domain.VIN, o domain.Outcome) {
	decodeOutcomes.add(ctx, op, o)
	if g.stats == nil {
		return
	}
	ev := domain.StatsEvent{VIN: vin, Op: op, Outcome: o, At: g.now()}
	if err := g.stats.Record(ctx, ev); err != nil {
		g.logger.Warn("stats record failed", "op", op, "outcome", o, "error", err)
	}
}
