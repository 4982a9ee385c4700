package handler

import (
	"net/http"
	"strings"

	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Companies: /v1/companies
// ============================================================

// listCompaniesHandler lists the workspace's companies, or searches them by
// name when ?q= is given.
func listCompaniesHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/companies")
		defer span.End()

		sess := SessionFromContext(ctx)
		req := parsePagination(r)
		if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
			span.SetAttributes(attribute.String("search.query", q))
			writePage(w, r, logger, svc.Search(ctx, sess, q, req))
			return
		}
		writePage(w, r, logger, svc.List(ctx, sess, req))
	}
}

func createCompanyHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/companies")
		defer span.End()

		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Create(ctx, SessionFromContext(ctx), fields), http.StatusCreated)
	}
}

func getCompanyHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/companies/{companyId}")
		defer span.End()

		id, ok := uuidParam(w, r, "companyId")
		if !ok {
			return
		}
		span.SetAttributes(attribute.String("company.id", id))
		writeOutcome(w, r, logger, svc.Details(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

// companyPageHandler returns everything the company detail page renders:
// the company and the account owner candidates.
func companyPageHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/companies/{companyId}/page")
		defer span.End()

		id, ok := uuidParam(w, r, "companyId")
		if !ok {
			return
		}
		span.SetAttributes(attribute.String("company.id", id))
		writeOutcome(w, r, logger, svc.Page(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

func updateCompanyHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/companies/{companyId}")
		defer span.End()

		id, ok := uuidParam(w, r, "companyId")
		if !ok {
			return
		}
		fields, ok := decodeFields(w, r)
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Update(ctx, SessionFromContext(ctx), id, fields), http.StatusOK)
	}
}

func deleteCompanyHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/companies/{companyId}")
		defer span.End()

		id, ok := uuidParam(w, r, "companyId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.Delete(ctx, SessionFromContext(ctx), id), http.StatusOK)
	}
}

type addressResponse struct {
	Error    string            `json:"error"`
	Kind     string            `json:"error_kind"`
	Problems map[string]string `json:"problems"`
}

// updateAddressHandler validates the address form before anything is sent
// to the CRM; every failing field is reported at once.
func updateAddressHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/companies/{companyId}/address")
		defer span.End()

		id, ok := uuidParam(w, r, "companyId")
		if !ok {
			return
		}
		var form domain.AddressForm
		if !decodeBody(w, r, &form) {
			return
		}
		if problems := form.Problems(); problems != nil {
			writeJSON(w, http.StatusBadRequest, addressResponse{
				Error:    "invalid address",
				Kind:     string(domain.KindValidation),
				Problems: problems,
			})
			return
		}
		writeOutcome(w, r, logger, svc.UpdateAddress(ctx, SessionFromContext(ctx), id, form), http.StatusOK)
	}
}

type ownersRequest struct {
	OwnerIDs []int64 `json:"owner_ids"`
}

type ownerRequest struct {
	OwnerID int64 `json:"owner_id"`
}

func setOwnersHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/companies/{companyId}/owners")
		defer span.End()

		id, ok := uuidParam(w, r, "companyId")
		if !ok {
			return
		}
		var req ownersRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.OwnerIDs == nil {
			req.OwnerIDs = []int64{}
		}
		writeOutcome(w, r, logger, svc.SetAccountOwners(ctx, SessionFromContext(ctx), id, req.OwnerIDs), http.StatusOK)
	}
}

func addOwnerHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/companies/{companyId}/owners")
		defer span.End()

		id, ok := uuidParam(w, r, "companyId")
		if !ok {
			return
		}
		var req ownerRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if req.OwnerID <= 0 {
			writeError(w, http.StatusBadRequest, "owner_id is required")
			return
		}
		span.SetAttributes(attribute.Int64("owner.id", req.OwnerID))
		writeOutcome(w, r, logger, svc.AddAccountOwner(ctx, SessionFromContext(ctx), id, req.OwnerID), http.StatusOK)
	}
}

func removeOwnerHandler(svc *service.CompanyService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/companies/{companyId}/owners/{ownerId}")
		defer span.End()

		id, ok := uuidParam(w, r, "companyId")
		if !ok {
			return
		}
		ownerID, ok := int64Param(w, r, "ownerId")
		if !ok {
			return
		}
		writeOutcome(w, r, logger, svc.RemoveAccountOwner(ctx, SessionFromContext(ctx), id, ownerID), http.StatusOK)
	}
}
