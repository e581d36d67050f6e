package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/exprcalc/exprcalc/internal/expression"
	"github.com/exprcalc/exprcalc/internal/types"
	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

var basePathRegexp = regexp.MustCompile(`^/v1/expressions`)

// evaluation is immutable once stored: the pipeline runs to completion
// before the record becomes visible.
type evaluation struct {
	Name       string    `json:"name"`
	Expression string    `json:"expression"`
	CreateTime time.Time `json:"createTime"`
	EndTime    time.Time `json:"endTime"`
	State      string    `json:"state"`
	Tree       string    `json:"tree,omitempty"`
	Result     string    `json:"result,omitempty"`
	Error      string    `json:"error,omitempty"`
}

type httpHandler struct {
	evaluator   *expression.Evaluator
	maxDepth    int
	idBase      uint64
	evaluations sync.Map
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !basePathRegexp.MatchString(r.URL.Path) {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if r.URL.Path == "/v1/expressions" {
		switch r.Method {
		case http.MethodGet:
			h.listEvaluations(w, r)
			return

		case http.MethodPost:
			h.createEvaluation(w, r)
			return

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/expressions/")
	if id == "" || strings.ContainsRune(id, '/') {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	h.getEvaluation(w, r, id)
}

func (h *httpHandler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var ev *evaluation
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if ev == nil || ev.Expression == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := fmt.Sprintf("%012x", atomic.AddUint64(&h.idBase, 1))
	ev.Name = "/v1/expressions/" + id
	ev.CreateTime = time.Now().UTC()
	h.evaluate(ev)
	h.evaluations.Store(id, ev)
	resJSON(w, http.StatusOK, ev)
}

func (h *httpHandler) evaluate(ev *evaluation) {
	defer func() {
		ev.EndTime = time.Now().UTC()
	}()

	expr, err := expression.ParseExprMaxDepth(ev.Expression, h.maxDepth)
	if err == nil {
		ev.Tree = expr.Render()

		var ret float64
		ret, err = h.evaluator.EvaluateValue(expr)
		if err == nil {
			ev.State = "SUCCEEDED"
			ev.Result = strconv.FormatFloat(ret, 'g', -1, 64)
			return
		}
	}

	ev.State = "FAILED"
	var exception types.Exception
	if errors.As(err, &exception) {
		var s strings.Builder
		if dumpErr := json.NewEncoder(&s).Encode(exception.Exception()); dumpErr != nil {
			log.Printf("failed to encode exception: %v", dumpErr)
			ev.Error = exception.Error()
		} else {
			ev.Error = strings.TrimSuffix(s.String(), "\n")
		}
	} else {
		ev.Error = fmt.Sprint(err)
	}
}

func (h *httpHandler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	results := []*evaluation{}
	h.evaluations.Range(func(key, value any) bool {
		results = append(results, value.(*evaluation))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})

	resJSON(w, http.StatusOK, map[string][]*evaluation{"evaluations": results})
}

func (h *httpHandler) getEvaluation(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.evaluations.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	resJSON(w, http.StatusOK, ret.(*evaluation))
}

func NewHTTPHandler(evaluator *expression.Evaluator, maxDepth int) http.Handler {
	return &httpHandler{
		evaluator: evaluator,
		maxDepth:  maxDepth,
	}
}

// Serve blocks until the listener fails or the process is interrupted,
// then drains in-flight requests before returning.
func Serve(listen string, handler http.Handler) error {
	srv := http.Server{
		Handler: handler,
		Addr:    listen,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var eg errgroup.Group
	eg.Go(func() error {
		defer stop()

		log.Printf("Listen HTTP on %s", listen)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
