package vehicle

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"vin-gateway/vehicle/domain"
)

const defaultFuelReimbursementPolicy = 1000

type createOrgRequest struct {
	Name                    string   `json:"name" validate:"required"`
	Account                 string   `json:"account" validate:"required"`
	Website                 string   `json:"website" validate:"required"`
	FuelReimbursementPolicy *float64 `json:"fuelReimbursementPolicy"`
	SpeedLimitPolicy        *float64 `json:"speedLimitPolicy"`
}

type updateOrgRequest struct {
	Account                 *string  `json:"account"`
	Website                 *string  `json:"website"`
	FuelReimbursementPolicy *float64 `json:"fuelReimbursementPolicy"`
	SpeedLimitPolicy        *float64 `json:"speedLimitPolicy"`
}

type orgView struct {
	domain.Organization
	ParentOrg *string `json:"parentOrg"`
}

type orgPage struct {
	TotalOrgs  int       `json:"totalOrgs"`
	Page       int       `json:"page"`
	TotalPages int       `json:"totalPages"`
	Data       []orgView `json:"data"`
}

// decodeOrgBody devolve a mensagem de erro para o cliente, ou "".
func decodeOrgBody(r *http.Request, v any) string {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return ""
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		switch ute.Field {
		case "fuelReimbursementPolicy":
			return "Fuel reimbursement policy must be a number."
		case "speedLimitPolicy":
			return "Speed limit policy must be a number."
		}
	}
	return "Invalid request body"
}

func (h *Handler) createOrg(w http.ResponseWriter, r *http.Request) {
	var req createOrgRequest
	if msg := decodeOrgBody(r, &req); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Name, account, and website are required fields.")
		return
	}

	org := domain.Organization{
		Name:                    req.Name,
		Account:                 req.Account,
		Website:                 req.Website,
		FuelReimbursementPolicy: defaultFuelReimbursementPolicy,
		SpeedLimitPolicy:        req.SpeedLimitPolicy,
	}
	if req.FuelReimbursementPolicy != nil && *req.FuelReimbursementPolicy != 0 {
		org.FuelReimbursementPolicy = *req.FuelReimbursementPolicy
	}

	h.orgs.Put(org)
	writeJSON(w, http.StatusCreated, org)
}

func (h *Handler) updateOrg(w http.ResponseWriter, r *http.Request) {
	var req updateOrgRequest
	if msg := decodeOrgBody(r, &req); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	org, err := h.orgs.Update(r.PathValue("name"), func(o *domain.Organization) {
		if req.Account != nil && *req.Account != "" {
			o.Account = *req.Account
		}
		if req.Website != nil && *req.Website != "" {
			o.Website = *req.Website
		}
		if req.FuelReimbursementPolicy != nil {
			o.FuelReimbursementPolicy = *req.FuelReimbursementPolicy
		}
		if req.SpeedLimitPolicy != nil {
			o.SpeedLimitPolicy = req.SpeedLimitPolicy
		}
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Organization updated", "org": org})
}

func (h *Handler) listOrgs(w http.ResponseWriter, r *http.Request) {
	page, okPage := positiveQueryInt(r, "page", 1)
	limit, okLimit := positiveQueryInt(r, "limit", 10)
	if !okPage || !okLimit {
		writeMessage(w, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}

	all := h.orgs.List()
	writeJSON(w, http.StatusOK, paginateOrgs(all, page, limit, h.orgs.Get))
}

func paginateOrgs(all []domain.Organization, page, limit int, lookup func(string) (domain.Organization, bool)) orgPage {
	out := orgPage{
		TotalOrgs:  len(all),
		Page:       page,
		TotalPages: len(all) / limit,
		Data:       []orgView{},
	}
	if len(all)%limit != 0 {
		out.TotalPages++
	}
	// page-1 < TotalPages garante (page-1)*limit < len(all), sem overflow
	if page-1 >= out.TotalPages {
		return out
	}

	start := (page - 1) * limit
	end := start + min(limit, len(all)-start)
	for _, o := range all[start:end] {
		v := orgView{Organization: o}
		if o.ParentOrgID != "" {
			if parent, ok := lookup(o.ParentOrgID); ok {
				name := parent.Name
				v.ParentOrg = &name
			}
		}
		out.Data = append(out.Data, v)
	}
	return out
}

func positiveQueryInt(r *http.Request, key string, def int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
