// Package phys models the physical inventory of a switch fabric: nodes and
// the linecards, supervisors, fan trays, fans, power supplies, interfaces and
// inter-switch links inside them. Entities populate themselves from
// class-tagged records fetched through a mo.Getter and register in an Arena
// keyed by distinguished name.
package phys

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// Kind identifies a physical entity variant.
type Kind string

const (
	KindNode           Kind = "node"
	KindLinecard       Kind = "linecard"
	KindSupervisor     Kind = "supervisor"
	KindFantray        Kind = "fantray"
	KindFan            Kind = "fan"
	KindPowersupply    Kind = "powersupply"
	KindInterface      Kind = "interface"
	KindLink           Kind = "link"
	KindExternalSwitch Kind = "external_switch"
	KindProcess        Kind = "process"
)

// Entity is the capability set shared by every physical inventory variant.
type Entity interface {
	DN() string
	Kind() Kind
}

// descriptor declares, per variant, the management classes that feed it and
// its place in the containment hierarchy. One generic fetch-and-populate
// routine consumes these instead of per-type method overrides.
type descriptor struct {
	classes  []string
	parent   Kind
	children []Kind
}

var descriptors = map[Kind]descriptor{
	KindNode: {
		classes: []string{
			"fabricNode", "firmwareCardRunning", "topSystem", "vpcInst", "vpcDom",
			"eqptCh", "l1PhysIf", "eqptFtSlot", "eqptLCSlot", "eqptPsuSlot",
			"eqptSupCSlot", "topoctrlLbP",
		},
		children: []Kind{KindSupervisor, KindLinecard, KindPowersupply, KindFantray},
	},
	KindLinecard:    {classes: []string{"eqptLC"}, parent: KindNode, children: []Kind{KindInterface}},
	KindSupervisor:  {classes: []string{"eqptSupC"}, parent: KindNode},
	KindFantray:     {classes: []string{"eqptFt"}, parent: KindNode, children: []Kind{KindFan}},
	KindFan:         {classes: []string{"eqptFan"}, parent: KindFantray},
	KindPowersupply: {classes: []string{"eqptPsu"}, parent: KindNode},
	KindInterface: {
		classes: []string{"l1PhysIf", "ethpmPhysIf", "l1RsCdpIfPolCons", "l1RsLldpIfPolCons", "cdpIfPol", "lldpIfPol"},
		parent:  KindLinecard,
	},
	KindLink: {classes: []string{"fabricLink"}},
	KindExternalSwitch: {
		classes: []string{"fabricLooseNode", "compHv", "fabricLooseLink", "pcAggrIf", "fabricProtLooseLink", "pcRsMbrIfs", "lldpAdjEp"},
	},
	KindProcess: {classes: []string{"procProc"}},
}

// SwitchClasses returns the management classes consumed by a variant.
func SwitchClasses(k Kind) []string {
	return descriptors[k].classes
}

// getModules fetches the records feeding kind. With a parent dn the query is
// a subtree query below that dn; without one it is a class-level query for
// the variant's primary class.
func getModules(ctx context.Context, getter mo.Getter, kind Kind, parentDN string) ([]mo.Record, error) {
	d := descriptors[kind]
	var u string
	if parentDN != "" {
		u = "/api/mo/" + parentDN + ".json?query-target=subtree&target-subtree-class=" + strings.Join(d.classes, ",")
	} else {
		u = "/api/node/class/" + d.classes[0] + ".json?query-target=self"
	}
	records, err := getter.Get(ctx, u)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s records", kind)
	}
	return records, nil
}

// parseSlot pulls the slot id out of a module dn, e.g.
// "topology/pod-1/node-101/sys/ch/lcslot-2/lc" yields "2".
func parseSlot(dn string) (string, error) {
	for _, seg := range strings.Split(dn, "/") {
		if i := strings.Index(seg, "slot-"); i >= 0 {
			return seg[i+len("slot-"):], nil
		}
	}
	return "", errors.Errorf("dn %q has no slot segment", dn)
}

// Arena holds every known entity keyed by dn, with parent/child edges stored
// as dn references. Keeping edges as identifiers rather than pointers avoids
// ownership cycles between parents and children.
type Arena struct {
	entities map[string]Entity
	parents  map[string]string
	children map[string][]string
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{
		entities: map[string]Entity{},
		parents:  map[string]string{},
		children: map[string][]string{},
	}
}

// Add registers an entity. Entities without a dn are rejected.
func (a *Arena) Add(e Entity) error {
	if e.DN() == "" {
		return errors.Errorf("%s entity has no dn", e.Kind())
	}
	a.entities[e.DN()] = e
	return nil
}

// AddChild registers child under the entity with dn parentDN. The parent must
// already be registered and must be of the variant the child's descriptor
// declares as its parent.
func (a *Arena) AddChild(parentDN string, child Entity) error {
	parent, ok := a.entities[parentDN]
	if !ok {
		return errors.Errorf("parent %q not in arena", parentDN)
	}
	if want := descriptors[child.Kind()].parent; want != "" && parent.Kind() != want {
		return errors.Errorf("%s requires a %s parent, got %s", child.Kind(), want, parent.Kind())
	}
	if err := a.Add(child); err != nil {
		return err
	}
	a.parents[child.DN()] = parentDN
	a.children[parentDN] = append(a.children[parentDN], child.DN())
	return nil
}

// Get returns the entity with the given dn.
func (a *Arena) Get(dn string) (Entity, bool) {
	e, ok := a.entities[dn]
	return e, ok
}

// Parent returns the parent entity of the given dn.
func (a *Arena) Parent(dn string) (Entity, bool) {
	p, ok := a.parents[dn]
	if !ok {
		return nil, false
	}
	return a.Get(p)
}

// Children returns the children of the given dn, filtered to one variant.
func (a *Arena) Children(dn string, kind Kind) []Entity {
	var result []Entity
	for _, c := range a.children[dn] {
		if e, ok := a.entities[c]; ok && e.Kind() == kind {
			result = append(result, e)
		}
	}
	return result
}
