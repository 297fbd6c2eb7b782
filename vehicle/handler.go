package vehicle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"vin-gateway/vehicle/domain"
	"vin-gateway/vehicle/infra"
)

// Decoder é o que os handlers de veículo precisam do application.Gateway.
type Decoder interface {
	Decode(ctx context.Context, vin string) (domain.DecodedVehicle, error)
	CreateVehicle(ctx context.Context, vin, org string) (domain.VehicleRecord, error)
	Vehicle(vin string) (domain.VehicleRecord, error)
}

// OrgStore é o CRUD de organizações usado por /orgs.
type OrgStore interface {
	Put(o domain.Organization)
	Get(name string) (domain.Organization, bool)
	Update(name string, fn func(*domain.Organization)) (domain.Organization, error)
	List() []domain.Organization
}

// StatsReader expõe os agregados em GET /stats.
type StatsReader interface {
	Snapshot() infra.StatsSnapshot
}

type HandlerOptions struct {
	Gateway Decoder
	Orgs    OrgStore
	// Stats é opcional; sem ele GET /stats responde 404.
	Stats StatsReader
	// RetryAfter vai no header Retry-After quando o limiter do upstream nega.
	RetryAfter time.Duration
	Logger     *slog.Logger
}

type Handler struct {
	gw         Decoder
	orgs       OrgStore
	stats      StatsReader
	retryAfter time.Duration
	logger     *slog.Logger
	validate   *validator.Validate
}

func NewHandler(opts HandlerOptions) *Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Handler{
		gw:         opts.Gateway,
		orgs:       opts.Orgs,
		stats:      opts.Stats,
		retryAfter: opts.RetryAfter,
		logger:     opts.Logger,
		validate:   newValidator(),
	}
}

// newValidator entra em pânico se a tag "vin" não registrar: é erro de
// programação, não de requisição.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := registerVINTag(v, "vin"); err != nil {
		panic(fmt.Sprintf("register vin validation: %v", err))
	}
	return v
}

func registerVINTag(v *validator.Validate, tag string) error {
	return v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return domain.IsValidVIN(fl.Field().String())
	})
}

// Routes monta o mux com todas as rotas do gateway.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /vehicles/decode/{vin}", h.decodeVehicle)
	mux.HandleFunc("GET /vehicles/{vin}", h.getVehicle)
	mux.HandleFunc("POST /vehicles", h.createVehicle)

	mux.HandleFunc("POST /orgs", h.createOrg)
	mux.HandleFunc("POST /Orgs", h.createOrg)
	mux.HandleFunc("PATCH /orgs/{name}", h.updateOrg)
	mux.HandleFunc("GET /orgs", h.listOrgs)

	mux.HandleFunc("GET /stats", h.getStats)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

func (h *Handler) decodeVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.gw.Decode(r.Context(), r.PathValue("vin"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) getVehicle(w http.ResponseWriter, r *http.Request) {
	rec, err := h.gw.Vehicle(r.PathValue("vin"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type createVehicleRequest struct {
	VIN string `json:"vin" validate:"required,vin"`
	Org string `json:"org" validate:"required"`
}

func (h *Handler) createVehicle(w http.ResponseWriter, r *http.Request) {
	var req createVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.logger.Debug("create vehicle request", "vin", req.VIN, "org", req.Org)

	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, r, vehicleValidationError(err))
		return
	}

	rec, err := h.gw.CreateVehicle(r.Context(), req.VIN, req.Org)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// vehicleValidationError traduz a primeira falha de campo para o erro de domínio.
func vehicleValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 && ves[0].StructField() == "Org" {
		return domain.ErrInvalidOrg
	}
	return domain.ErrInvalidVIN
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeMessage(w, http.StatusNotFound, "Stats not enabled")
		return
	}
	writeJSON(w, http.StatusOK, h.stats.Snapshot())
}
