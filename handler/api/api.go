package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mintdao/issuer/core"
	"golang.org/x/sync/singleflight"
)

func New(
	issuerz core.IssuerService,
	ledger core.LedgerStore,
	logger *slog.Logger,
) *Server {
	return &Server{
		issuerz: issuerz,
		ledger:  ledger,
		logger:  logger.With("server", "api"),
		sf:      &singleflight.Group{},
	}
}

type Server struct {
	issuerz core.IssuerService
	ledger  core.LedgerStore
	logger  *slog.Logger
	sf      *singleflight.Group
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// clients derive handles locally from (authority, symbol).
	r.Get("/authority", func(w http.ResponseWriter, _ *http.Request) {
		render(w, http.StatusOK, map[string]any{"authority": s.issuerz.Authority()})
	})

	r.Route("/assets", func(r chi.Router) {
		r.Post("/", s.initialize)
		r.Get("/", s.listAssets)

		r.Route("/{symbol}", func(r chi.Router) {
			r.Get("/", s.getAsset)
			r.Get("/accounts/{account}", s.getAccount)
			r.Post("/mint", s.mint)
			r.Post("/burn", s.burn)
			r.Post("/force-transfer", s.forceTransfer)
			r.Post("/transfer", s.transfer)
			r.Post("/freeze", s.freeze)
			r.Post("/unfreeze", s.unfreeze)
		})
	})

	return r
}

type initializeRequest struct {
	Caller string `json:"caller"`
	core.InitializeInput
}

func (s *Server) initialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderErr(w, errBadRequest("invalid request body"))
		return
	}

	if req.Symbol == "" {
		renderErr(w, errBadRequest("symbol required"))
		return
	}

	// concurrent duplicate submissions collapse into one initialize. The
	// flight is keyed per caller so a different caller never observes a
	// result it is not authorized for; the loser of a genuine race still
	// gets ErrAlreadyInitialized from below.
	v, err, _ := s.sf.Do(req.Caller+":"+req.Symbol, func() (interface{}, error) {
		return s.issuerz.Initialize(r.Context(), req.Caller, req.InitializeInput)
	})

	if err != nil {
		s.logger.Error("issuerz.Initialize", "symbol", req.Symbol, "err", err)
		renderErr(w, err)
		return
	}

	render(w, http.StatusCreated, map[string]any{"handle": v.(string)})
}

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.ledger.ListAssets(r.Context())
	if err != nil {
		s.logger.Error("ledger.ListAssets", "err", err)
		renderErr(w, err)
		return
	}

	views := make([]*assetView, 0, len(assets))
	for _, asset := range assets {
		views = append(views, viewAsset(asset))
	}

	render(w, http.StatusOK, map[string]any{"assets": views})
}

func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	handle := s.issuerz.ResolveHandle(chi.URLParam(r, "symbol"))

	asset, err := s.issuerz.GetAsset(r.Context(), handle)
	if err != nil {
		renderErr(w, err)
		return
	}

	render(w, http.StatusOK, viewAsset(asset))
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	handle := s.issuerz.ResolveHandle(chi.URLParam(r, "symbol"))

	asset, err := s.issuerz.GetAsset(r.Context(), handle)
	if err != nil {
		renderErr(w, err)
		return
	}

	entry, err := s.ledger.FindEntry(r.Context(), handle, chi.URLParam(r, "account"))
	if err != nil {
		s.logger.Error("ledger.FindEntry", "err", err)
		renderErr(w, err)
		return
	}

	render(w, http.StatusOK, viewEntry(entry, asset.Decimals))
}

type controlRequest struct {
	Caller  string `json:"caller"`
	To      string `json:"to,omitempty"`
	From    string `json:"from,omitempty"`
	Account string `json:"account,omitempty"`
	Amount  string `json:"amount,omitempty"`
}

func decodeControl(r *http.Request) (*controlRequest, uint64, error) {
	var req controlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, 0, errBadRequest("invalid request body")
	}

	if req.Amount == "" {
		return &req, 0, nil
	}

	// amounts travel as base-unit strings; uint64 does not survive a JSON
	// number round trip.
	amount, err := strconv.ParseUint(req.Amount, 10, 64)
	if err != nil {
		return nil, 0, errBadRequest("invalid amount")
	}

	return &req, amount, nil
}

func (s *Server) mint(w http.ResponseWriter, r *http.Request) {
	req, amount, err := decodeControl(r)
	if err != nil {
		renderErr(w, err)
		return
	}

	handle := s.issuerz.ResolveHandle(chi.URLParam(r, "symbol"))
	if err := s.issuerz.Mint(r.Context(), req.Caller, handle, req.To, amount); err != nil {
		renderErr(w, err)
		return
	}

	renderOK(w)
}

func (s *Server) burn(w http.ResponseWriter, r *http.Request) {
	req, amount, err := decodeControl(r)
	if err != nil {
		renderErr(w, err)
		return
	}

	handle := s.issuerz.ResolveHandle(chi.URLParam(r, "symbol"))
	if err := s.issuerz.Burn(r.Context(), req.Caller, handle, req.From, amount); err != nil {
		renderErr(w, err)
		return
	}

	renderOK(w)
}

func (s *Server) forceTransfer(w http.ResponseWriter, r *http.Request) {
	req, amount, err := decodeControl(r)
	if err != nil {
		renderErr(w, err)
		return
	}

	handle := s.issuerz.ResolveHandle(chi.URLParam(r, "symbol"))
	if err := s.issuerz.ForceTransfer(r.Context(), req.Caller, handle, req.From, req.To, amount); err != nil {
		renderErr(w, err)
		return
	}

	renderOK(w)
}

// transfer is the ordinary path: no authorization, frozen flags enforced by
// the ledger.
func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	req, amount, err := decodeControl(r)
	if err != nil {
		renderErr(w, err)
		return
	}

	handle := s.issuerz.ResolveHandle(chi.URLParam(r, "symbol"))
	if _, err := s.issuerz.GetAsset(r.Context(), handle); err != nil {
		renderErr(w, err)
		return
	}

	if err := s.ledger.Transfer(r.Context(), handle, req.From, req.To, amount); err != nil {
		renderErr(w, err)
		return
	}

	renderOK(w)
}

func (s *Server) freeze(w http.ResponseWriter, r *http.Request) {
	s.setFrozen(w, r, true)
}

func (s *Server) unfreeze(w http.ResponseWriter, r *http.Request) {
	s.setFrozen(w, r, false)
}

func (s *Server) setFrozen(w http.ResponseWriter, r *http.Request, frozen bool) {
	req, _, err := decodeControl(r)
	if err != nil {
		renderErr(w, err)
		return
	}

	handle := s.issuerz.ResolveHandle(chi.URLParam(r, "symbol"))

	if frozen {
		err = s.issuerz.FreezeAccount(r.Context(), req.Caller, handle, req.Account)
	} else {
		err = s.issuerz.UnfreezeAccount(r.Context(), req.Caller, handle, req.Account)
	}

	if err != nil {
		renderErr(w, err)
		return
	}

	renderOK(w)
}
