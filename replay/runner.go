package replay

import (
	"context"
	"log/slog"

	"github.com/ctxmeter/ctxmeter/classify"
	"github.com/ctxmeter/ctxmeter/infer"
	"github.com/ctxmeter/ctxmeter/platform"
	"github.com/ctxmeter/ctxmeter/usage"
)

// Runner feeds captured records through the classification and inference
// pipeline into a usage store, reproducing the live evidence flow.
type Runner struct {
	store      *usage.Store
	classifier *classify.Classifier
	log        *slog.Logger
}

// NewRunner creates a runner over the given store. A nil rules value
// uses the default tables for network classification.
func NewRunner(store *usage.Store, rules *platform.Rules) *Runner {
	return &Runner{
		store:      store,
		classifier: classify.New(rules),
		log:        slog.Default(),
	}
}

// Store returns the underlying usage store.
func (r *Runner) Store() *usage.Store {
	return r.store
}

// Feed dispatches one record, returning true if it changed tracker
// state. Records that classify to nothing are dropped, matching the
// live path.
func (r *Runner) Feed(rec Record) bool {
	switch rec.Type {
	case TypeContext:
		p := platform.Platform(rec.Platform)
		if !p.Known() {
			r.log.Debug("skipping context record for unknown platform", "platform", rec.Platform)
			return false
		}
		r.store.Create(rec.Context, p)
		return true

	case TypeLocation:
		t, ok := r.store.Get(rec.Context)
		if !ok {
			return false
		}
		return t.ObserveLocation(rec.URL)

	case TypeText:
		t, ok := r.store.Get(rec.Context)
		if !ok {
			return false
		}
		return t.Apply(usage.TextEstimate{Chars: rec.Chars})

	case TypeNetwork:
		t, ok := r.store.Get(rec.Context)
		if !ok {
			return false
		}
		ev, ok := r.classifier.Classify(t.Platform(), rec.URL, []byte(rec.Payload))
		if !ok {
			return false
		}
		return t.Apply(ev)

	case TypeUI:
		t, ok := r.store.Get(rec.Context)
		if !ok {
			return false
		}
		cues := infer.Cues{
			ButtonText:  rec.Buttons,
			ProfileText: rec.Profile,
			PickerText:  rec.Picker,
			NavText:     rec.Nav,
		}
		var sig usage.UISignal
		if plan, ok := infer.Plan(t.Platform(), cues); ok {
			sig.Plan = plan
		}
		if model, ok := infer.Model(t.Platform(), cues); ok {
			sig.ModelName = model
		}
		if sig.Plan == platform.PlanUnknown && sig.ModelName == "" {
			return false
		}
		return t.Apply(sig)

	default:
		r.log.Debug("skipping unknown record type", "type", rec.Type)
		return false
	}
}

// Run replays every record in a capture file in order, returning the
// number of records that changed tracker state.
func (r *Runner) Run(path string) (int, error) {
	records, err := ReadFile(path)
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, rec := range records {
		if r.Feed(rec) {
			applied++
		}
	}
	return applied, nil
}

// Follow replays the existing file, then tails it until the context is
// cancelled, feeding new records as they arrive.
func (r *Runner) Follow(ctx context.Context, path string) error {
	reader, err := NewReader(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	records, err := reader.ReadAll()
	if err != nil {
		return err
	}
	for _, rec := range records {
		r.Feed(rec)
	}

	for rec := range reader.Tail(ctx) {
		r.Feed(rec)
	}
	return ctx.Err()
}
