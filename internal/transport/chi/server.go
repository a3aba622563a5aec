// Package chi exposes the storefront recommendation API over HTTP.
//
// List endpoints degrade to empty 200 responses on lookup misses and
// internal faults; the storefront renders an empty shelf rather than an
// error page. Only malformed requests get 4xx.
package chi

import (
	"errors"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/stylemart/stylemart/internal/domain"
	cataloguc "github.com/stylemart/stylemart/internal/usecase/catalog"
	healthuc "github.com/stylemart/stylemart/internal/usecase/health"
	historyuc "github.com/stylemart/stylemart/internal/usecase/history"
	modelinfouc "github.com/stylemart/stylemart/internal/usecase/modelinfo"
	recommenduc "github.com/stylemart/stylemart/internal/usecase/recommend"
	similaruc "github.com/stylemart/stylemart/internal/usecase/similar"
)

// detailSimilarK is the size of the similar-products rail on product detail.
const detailSimilarK = 5

// defaultSimilarK is the similar-products list size when the caller does
// not pass k.
const defaultSimilarK = 5

// Server holds the HTTP handlers for the storefront API.
type Server struct {
	catalog   *cataloguc.Service
	similar   *similaruc.Service
	recommend *recommenduc.Service
	history   *historyuc.Service
	model     *modelinfouc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	catalog *cataloguc.Service,
	similar *similaruc.Service,
	recommend *recommenduc.Service,
	history *historyuc.Service,
	model *modelinfouc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		catalog:   catalog,
		similar:   similar,
		recommend: recommend,
		history:   history,
		model:     model,
		health:    health,
		logger:    logger,
	}
}

// Routes mounts all API routes on the router.
func (s *Server) Routes(r chirouter.Router) {
	r.Get("/api/products", s.listProducts)
	r.Get("/api/products/{articleID}", s.getProduct)
	r.Get("/api/products/{articleID}/similar", s.listSimilar)
	r.Get("/api/categories", s.listCategories)
	r.Get("/api/recommendations", s.listRecommendations)
	r.Get("/api/purchases", s.listPurchases)
	r.Post("/api/buy", s.recordPurchase)
	r.Get("/status", s.getStatus)
	r.Get("/health", s.healthCheck)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// listProducts handles GET /api/products.
func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := cataloguc.BrowseQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("gender"); raw != "" {
		gender, err := domain.ParseGender(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "gender must be 'male' or 'female'")
			return
		}
		q.Gender = gender
	}

	products, err := s.catalog.Browse(r.Context(), q)
	if err != nil {
		s.logger.Warn("browse failed", zap.Error(err))
		writeJSON(w, http.StatusOK, []productSummary{})
		return
	}
	writeJSON(w, http.StatusOK, summariesFromProducts(products))
}

// getProduct handles GET /api/products/{articleID}.
func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	articleID, ok := s.articleIDParam(w, r)
	if !ok {
		return
	}

	p, err := s.catalog.Get(r.Context(), articleID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "product not found")
			return
		}
		s.logger.Error("get product failed", zap.Int64("article_id", articleID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}

	detail := productDetail{
		productSummary:  summaryFromProduct(p),
		Description:     p.Description(),
		SimilarProducts: []productSummary{},
	}
	if rail, err := s.similarProducts(r, articleID, detailSimilarK); err != nil {
		s.logger.Warn("similar rail failed", zap.Int64("article_id", articleID), zap.Error(err))
	} else {
		detail.SimilarProducts = rail
	}

	writeJSON(w, http.StatusOK, detail)
}

// listSimilar handles GET /api/products/{articleID}/similar.
func (s *Server) listSimilar(w http.ResponseWriter, r *http.Request) {
	articleID, ok := s.articleIDParam(w, r)
	if !ok {
		return
	}

	k := defaultSimilarK
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "k must be a positive integer")
			return
		}
		k = parsed
	}

	ids, err := s.similar.SimilarItems(r.Context(), articleID, k)
	if err != nil {
		s.logger.Warn("similar items failed", zap.Int64("article_id", articleID), zap.Error(err))
		writeJSON(w, http.StatusOK, []int64{})
		return
	}
	if ids == nil {
		ids = []int64{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// listCategories handles GET /api/categories.
func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.logger.Warn("list categories failed", zap.Error(err))
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// listRecommendations handles GET /api/recommendations.
func (s *Server) listRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userIDParam(w, r)
	if !ok {
		return
	}

	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, codeBadRequest, "k must be a positive integer")
			return
		}
		k = parsed
	}

	products, err := s.recommend.Recommend(r.Context(), userID, k)
	if err != nil {
		s.logger.Warn("recommend failed", zap.Int64("user_id", userID), zap.Error(err))
		writeJSON(w, http.StatusOK, []productSummary{})
		return
	}
	writeJSON(w, http.StatusOK, summariesFromProducts(products))
}

// listPurchases handles GET /api/purchases.
func (s *Server) listPurchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.userIDParam(w, r)
	if !ok {
		return
	}

	entries, err := s.history.List(r.Context(), userID)
	if err != nil {
		s.logger.Warn("list purchases failed", zap.Int64("user_id", userID), zap.Error(err))
		writeJSON(w, http.StatusOK, []purchaseEntry{})
		return
	}
	writeJSON(w, http.StatusOK, entriesFromHistory(entries))
}

// recordPurchase handles POST /api/buy.
func (s *Server) recordPurchase(w http.ResponseWriter, r *http.Request) {
	var req buyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.UserID <= 0 || req.ArticleID <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "user_id and article_id are required")
		return
	}

	if err := s.history.Record(r.Context(), req.UserID, req.ArticleID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, codeNotFound, "user not found")
			return
		}
		s.logger.Error("record purchase failed",
			zap.Int64("user_id", req.UserID),
			zap.Int64("article_id", req.ArticleID),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

// getStatus handles GET /status.
func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	status := s.model.Status()

	count, err := s.catalog.Count(r.Context())
	if err != nil {
		s.logger.Warn("catalog count failed", zap.Error(err))
		count = 0
	}

	writeJSON(w, http.StatusOK, statusResponse{
		ModelLoaded: status.Loaded,
		ModelTrees:  status.Trees,
		ModelError:  status.Err,
		Products:    count,
	})
}

// healthCheck handles GET /health.
func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	// Degraded still serves traffic: the model artifact is diagnostic only.
	// Only a database failure takes the service out of rotation.
	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// similarProducts resolves the similar-products rail for product detail.
func (s *Server) similarProducts(r *http.Request, articleID int64, k int) ([]productSummary, error) {
	ids, err := s.similar.SimilarItems(r.Context(), articleID, k)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []productSummary{}, nil
	}
	products, err := s.catalog.GetMulti(r.Context(), ids)
	if err != nil {
		return nil, err
	}
	return summariesFromProducts(products), nil
}

func (s *Server) articleIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chirouter.URLParam(r, "articleID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "article id must be a positive integer")
		return 0, false
	}
	return id, true
}

func (s *Server) userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("user_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "user_id must be a positive integer")
		return 0, false
	}
	return id, true
}
