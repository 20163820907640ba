package mo

import (
	"context"
	"strings"

	"github.com/packethost/pkg/log"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Classes with indexing policy attached to them.
const (
	ClassFabricNode = "fabricNode"
	ClassL3Inst     = "l3Inst"
	ClassL3Ctx      = "l3Ctx"
	ClassL2BD       = "l2BD"
)

// Segment describes the network segment behind a vnid: an L3 context or a
// bridge domain.
type Segment struct {
	Name string
	Type string // "context" or "bd"
	// Context is the name of the owning context, set for bridge domains only.
	Context string
}

// WorkingData stages the result of one bulk subtree query and serves it back
// by distinguished name or by class. It is built by a single Ingest (or
// Query) call and is read-only afterwards, so it is safe to share between
// goroutines; a fresh traversal builds a fresh WorkingData.
type WorkingData struct {
	gauge  prometheus.Gauge
	logger *log.Logger

	byDN    map[string]Record
	byClass map[string][]Record

	vnids    map[string]Segment
	ctxVnids map[string]string
	bdVnids  map[string]string
}

// The Option type configures a WorkingData during New.
type Option func(*WorkingData)

// Gauge sets the gauge used to track the number of indexed records.
func Gauge(g prometheus.Gauge) Option {
	return func(w *WorkingData) {
		w.gauge = g
	}
}

// Logger sets the logger used to log non-error but exceptional things.
func Logger(l log.Logger) Option {
	return func(w *WorkingData) {
		w.logger = &l
	}
}

// New returns an empty WorkingData.
func New(options ...Option) *WorkingData {
	w := &WorkingData{
		byDN:     map[string]Record{},
		byClass:  map[string][]Record{},
		vnids:    map[string]Segment{},
		ctxVnids: map[string]string{},
		bdVnids:  map[string]string{},
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

// Ingest indexes one batch of records by dn and by class in a single pass,
// then derives the vnid dictionary. A later record with the same dn silently
// overwrites the earlier one in the dn index.
//
// fabricNode records get special treatment: the upstream switch may return
// the same controller node several times, so controllers are deduplicated by
// dn with the first occurrence winning. Leaf and spine records are appended
// unconditionally even when duplicated, and records with any other role are
// left out of the class index entirely. This mirrors accepted upstream
// behavior and must not be "fixed" here.
func (w *WorkingData) Ingest(records []Record) {
	for _, r := range records {
		if r.Class == "" || r.Class == "error" {
			continue
		}
		w.byDN[r.DN()] = r

		if r.Class != ClassFabricNode {
			w.byClass[r.Class] = append(w.byClass[r.Class], r)
			continue
		}

		switch r.Attributes["role"] {
		case "leaf", "spine":
			w.byClass[r.Class] = append(w.byClass[r.Class], r)
		case "controller":
			found := false
			for _, have := range w.byClass[r.Class] {
				if have.DN() == r.DN() {
					found = true
					break
				}
			}
			if !found {
				w.byClass[r.Class] = append(w.byClass[r.Class], r)
			}
		default:
			if w.logger != nil {
				w.logger.With("dn", r.DN(), "role", r.Attributes["role"]).
					Info("fabric node with unindexed role")
			}
		}
	}

	if w.gauge != nil {
		w.gauge.Set(float64(len(w.byDN)))
	}

	w.buildVnids()
}

// GetClass returns all indexed records of the given class in batch order.
// Unknown classes yield an empty slice, never an error.
func (w *WorkingData) GetClass(class string) []Record {
	return w.byClass[class]
}

// GetObject returns the record with exactly the given dn.
func (w *WorkingData) GetObject(dn string) (Record, bool) {
	r, ok := w.byDN[dn]
	return r, ok
}

// GetSubtree returns the records of the given class whose dn starts with the
// literal string prefix. The comparison is not path-segment aware: a prefix
// of "sys/ch" also matches "sys/chassis-info".
func (w *WorkingData) GetSubtree(class, dnPrefix string) []Record {
	var result []Record
	for _, r := range w.GetClass(class) {
		if strings.HasPrefix(r.DN(), dnPrefix) {
			result = append(result, r)
		}
	}
	return result
}

// Vnid returns the segment mapped to a vnid.
func (w *WorkingData) Vnid(vnid string) (Segment, bool) {
	s, ok := w.vnids[vnid]
	return s, ok
}

// Vnids returns a copy of the whole vnid dictionary.
func (w *WorkingData) Vnids() map[string]Segment {
	out := make(map[string]Segment, len(w.vnids))
	for vnid, s := range w.vnids {
		out[vnid] = s
	}
	return out
}

// ContextVnid returns the vnid of the named L3 context.
func (w *WorkingData) ContextVnid(name string) (string, bool) {
	v, ok := w.ctxVnids[name]
	return v, ok
}

// BridgeDomainVnid returns the vnid of the named bridge domain.
func (w *WorkingData) BridgeDomainVnid(name string) (string, bool) {
	v, ok := w.bdVnids[name]
	return v, ok
}

// encapVnid derives the numeric segment id from an encap value such as
// "vxlan-12345": the text after the last hyphen, or the whole value when
// there is no hyphen.
func encapVnid(encap string) string {
	if i := strings.LastIndex(encap, "-"); i >= 0 {
		return encap[i+1:]
	}
	return encap
}

// buildVnids maps vnids to context and bridge-domain segments. Contexts are
// processed first so bridge domains can resolve their owning context through
// the dn index.
func (w *WorkingData) buildVnids() {
	ctxData := append([]Record{}, w.GetClass(ClassL3Inst)...)
	ctxData = append(ctxData, w.GetClass(ClassL3Ctx)...)
	for _, ctx := range ctxData {
		vnid := encapVnid(ctx.Attributes["encap"])
		name := ctx.Attributes["name"]
		w.vnids[vnid] = Segment{Name: name, Type: "context"}
		w.ctxVnids[name] = vnid
	}

	for _, bd := range w.GetClass(ClassL2BD) {
		vnid := encapVnid(bd.Attributes["fabEncap"])
		name := bd.Attributes["name"]
		if i := strings.LastIndex(name, ":"); i >= 0 {
			name = name[i+1:]
		}
		if name == "" {
			name = vnid
		}

		context := ""
		if parent, ok := w.GetObject(ParentDN(bd.DN())); ok {
			if parent.Class == ClassL3Ctx || parent.Class == ClassL3Inst {
				context = parent.Attributes["name"]
			}
		}

		w.vnids[vnid] = Segment{Name: name, Type: "bd", Context: context}
		w.bdVnids[name] = vnid
	}
}

// Query issues one bulk subtree query rooted at moURL, filtered to the given
// classes, and ingests the result. moURL is the .json path of the root
// managed object, e.g. "/api/mo/topology/pod-1/node-101/sys.json".
func (w *WorkingData) Query(ctx context.Context, getter Getter, moURL string, classes ...string) error {
	u := moURL + "?query-target=subtree&target-subtree-class=" + strings.Join(classes, ",")
	records, err := getter.Get(ctx, u)
	if err != nil {
		return errors.Wrap(err, "subtree query")
	}
	w.Ingest(records)
	return nil
}
