package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tokenscope/pkg/b64url"
	"github.com/dmitrymomot/tokenscope/pkg/encoder"
	"github.com/dmitrymomot/tokenscope/pkg/jsonval"
	"github.com/dmitrymomot/tokenscope/pkg/lexical"
	"github.com/dmitrymomot/tokenscope/pkg/semantic"
	"github.com/dmitrymomot/tokenscope/pkg/signer"
	"github.com/dmitrymomot/tokenscope/pkg/syntax"
)

// maxBodyBytes bounds request bodies; tokens and claim sets are small.
const maxBodyBytes = 1 << 20

// analyzeLexical runs phase 1, the FSM shape check, over the token from the
// URL path.
func (h *Handler) analyzeLexical(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	result := lexical.Scan(token)
	if !result.Valid {
		respondResult(w, envelope{
			"valid":  false,
			"tokens": []string{},
			"error":  result.Err.Error(),
		})
		return
	}

	respondResult(w, envelope{
		"valid":     true,
		"tokens":    result.Segments(),
		"header":    result.Header,
		"payload":   result.Payload,
		"signature": result.Signature,
	})
}

// decodeSegments turns the header and payload segments of a lexical result
// into JSON texts for the structural phase.
func (h *Handler) decodeSegments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Valid   *bool  `json:"valid"`
		Header  string `json:"header"`
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be a lexical result with 'header' and 'payload'")
		return
	}
	if req.Valid != nil && !*req.Valid {
		respondError(w, http.StatusBadRequest, "lexical result is not valid; nothing to decode")
		return
	}
	if req.Header == "" || req.Payload == "" {
		respondError(w, http.StatusBadRequest, "request body must contain nonempty 'header' and 'payload' segments")
		return
	}

	headerText, err := b64url.Decode(req.Header)
	if err != nil {
		respondTypedError(w, http.StatusBadRequest, fmt.Sprintf("header segment: %v", err), "DecodeError")
		return
	}
	payloadText, err := b64url.Decode(req.Payload)
	if err != nil {
		respondTypedError(w, http.StatusBadRequest, fmt.Sprintf("payload segment: %v", err), "DecodeError")
		return
	}

	respondResult(w, [2]string{headerText, payloadText})
}

// analyzeSyntax runs the structural phase over the two decoded JSON texts.
func (h *Handler) analyzeSyntax(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Result []string `json:"result"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil || len(req.Result) != 2 {
		respondError(w, http.StatusBadRequest, `request body must be {"result": [headerText, payloadText]}`)
		return
	}

	result := syntax.Analyze(req.Result[0], req.Result[1])

	out := envelope{
		"valid":  result.Valid,
		"errors": result.Errors(),
	}
	if result.Header.Kind() != jsonval.KindNull || result.Valid {
		out["header"] = result.Header.Interface()
		out["payload"] = result.Payload.Interface()
	}
	respondResult(w, out)
}

// analyzeSemantic runs the fail-fast rule engine over header and payload
// objects against the current time.
func (h *Handler) analyzeSemantic(w http.ResponseWriter, r *http.Request) {
	header, payload, _, ok := h.readDocuments(w, r)
	if !ok {
		return
	}

	if err := semantic.Analyze(header, payload, time.Now().Unix()); err != nil {
		respondTypedError(w, http.StatusBadRequest, err.Error(), semantic.Kind(err))
		return
	}

	respondResult(w, envelope{
		"header":  jsonval.ObjectValue(header).Interface(),
		"payload": jsonval.ObjectValue(payload).Interface(),
		"valid":   true,
	})
}

// encodeToken mints a signed token from caller-supplied header and payload.
func (h *Handler) encodeToken(w http.ResponseWriter, r *http.Request) {
	header, payload, body, ok := h.readDocuments(w, r)
	if !ok {
		return
	}

	secret := h.cfg.DefaultSecret
	if s, found := body.Get("secret"); found {
		if s.Kind() != jsonval.KindString {
			respondError(w, http.StatusBadRequest, "field 'secret' must be a string")
			return
		}
		secret = s.Str()
	}

	token, err := encoder.Encode(header, payload, secret)
	if err != nil {
		respondTypedError(w, http.StatusBadRequest, err.Error(), encodeErrorKind(err))
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "jwt": token})
}

// verifySignature checks a token's cryptographic integrity. Claim validity
// (expiry, activation) is deliberately out of scope here; clients run the
// semantic phase separately when they need it.
func (h *Handler) verifySignature(w http.ResponseWriter, r *http.Request) {
	var req struct {
		JWT    *string `json:"jwt"`
		Secret *string `json:"secret"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "request body must be JSON with 'jwt' and 'secret' strings")
		return
	}
	if req.JWT == nil || req.Secret == nil {
		respondError(w, http.StatusBadRequest, "request body must contain 'jwt' and 'secret'")
		return
	}

	result := signer.Verify(*req.JWT, *req.Secret)
	if !result.Valid {
		out := envelope{
			"success":    true,
			"valid":      false,
			"error":      result.Err.Error(),
			"error_type": verifyErrorKind(result.Err),
		}
		if result.Algorithm != "" {
			out["algorithm"] = string(result.Algorithm)
		}
		if result.Header != nil {
			out["header"] = jsonval.ObjectValue(result.Header).Interface()
		}
		writeJSON(w, http.StatusBadRequest, out)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success":   true,
		"valid":     true,
		"algorithm": string(result.Algorithm),
		"header":    jsonval.ObjectValue(result.Header).Interface(),
		"payload":   jsonval.ObjectValue(result.Payload).Interface(),
	})
}

// readDocuments parses the request body with the pipeline's own JSON parser
// so claim ordering and integer/float distinctions survive intact, then
// narrows the 'header' and 'payload' fields to objects.
func (h *Handler) readDocuments(w http.ResponseWriter, r *http.Request) (header, payload, body *jsonval.Object, ok bool) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(raw) == 0 {
		respondError(w, http.StatusBadRequest, "request body is required")
		return nil, nil, nil, false
	}

	parsed, err := jsonval.Parse(string(raw))
	if err != nil || parsed.Kind() != jsonval.KindObject {
		respondError(w, http.StatusBadRequest, "request body must be a JSON object")
		return nil, nil, nil, false
	}
	body = parsed.Object()

	headerVal, found := body.Get("header")
	if !found || headerVal.Kind() != jsonval.KindObject {
		respondError(w, http.StatusBadRequest, "field 'header' must be a JSON object")
		return nil, nil, nil, false
	}
	payloadVal, found := body.Get("payload")
	if !found || payloadVal.Kind() != jsonval.KindObject {
		respondError(w, http.StatusBadRequest, "field 'payload' must be a JSON object")
		return nil, nil, nil, false
	}

	return headerVal.Object(), payloadVal.Object(), body, true
}

func encodeErrorKind(err error) string {
	var structural *encoder.StructuralError
	switch {
	case errors.Is(err, signer.ErrUnsupportedAlgorithm):
		return "UnsupportedAlgorithmError"
	case errors.As(err, &structural):
		return "StructuralError"
	default:
		if kind := semantic.Kind(err); kind != "" {
			return kind
		}
		return "EncodingError"
	}
}

func verifyErrorKind(err error) string {
	switch {
	case errors.Is(err, lexical.ErrMalformedToken):
		return "LexicalError"
	case errors.Is(err, b64url.ErrInvalidBase64), errors.Is(err, b64url.ErrInvalidUTF8):
		return "DecodeError"
	case errors.Is(err, jsonval.ErrParse):
		return "ParseError"
	case errors.Is(err, signer.ErrUnsupportedAlgorithm):
		return "UnsupportedAlgorithmError"
	case errors.Is(err, signer.ErrMissingAlgorithm):
		return "MissingClaimError"
	case errors.Is(err, signer.ErrSignatureMismatch):
		return "SignatureMismatchError"
	default:
		return "VerificationError"
	}
}
