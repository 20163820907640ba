package phys

import (
	"context"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// ExternalSwitch is a switch attached to the fabric but not managed by it: an
// external layer 2 switch, a router, or a hypervisor virtual switch. Nearly
// everything known about one comes from LLDP.
type ExternalSwitch struct {
	Name       string
	ID         string
	IP         string
	MAC        string
	Status     string
	OperIssues string
	Descr      string
	Type       string
	State      string
	GUID       string
	OID        string
	Role       string
	FabricSt   string
	Dn         string
}

// DN implements Entity.
func (es *ExternalSwitch) DN() string {
	return es.Dn
}

// Kind implements Entity.
func (es *ExternalSwitch) Kind() Kind {
	return KindExternalSwitch
}

func (es *ExternalSwitch) populatePhysical(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&es.Dn, "dn"},
		{&es.Name, "sysName"},
		{&es.ID, "id"},
		{&es.Status, "status"},
		{&es.OperIssues, "operIssues"},
		{&es.Descr, "sysDesc"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

func (es *ExternalSwitch) populateVirtual(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&es.Dn, "dn"},
		{&es.Name, "name"},
		{&es.Descr, "descr"},
		{&es.Type, "type"},
		{&es.State, "state"},
		{&es.GUID, "guid"},
		{&es.OID, "oid"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}

// GetExternalSwitches returns the unmanaged switches attached to the fabric:
// physical loose nodes plus hypervisor virtual switches, each enriched with
// its LLDP neighbor info.
func GetExternalSwitches(ctx context.Context, getter mo.Getter) ([]*ExternalSwitch, error) {
	var switches []*ExternalSwitch

	records, err := getter.Get(ctx, "/api/node/class/fabricLooseNode.json?query-target=self")
	if err != nil {
		return nil, errors.Wrap(err, "get loose nodes")
	}
	for _, r := range records {
		if r.Class != "fabricLooseNode" {
			continue
		}
		es := &ExternalSwitch{Role: "external_switch", FabricSt: "external"}
		if err := es.populatePhysical(r); err != nil {
			return nil, errors.Wrap(err, "populate external switch")
		}
		if err := es.getNeighborInfo(ctx, getter); err != nil {
			return nil, errors.Wrapf(err, "external switch %q neighbor info", es.Dn)
		}
		switches = append(switches, es)
	}

	records, err = getter.Get(ctx, "/api/node/class/compHv.json?query-target=self")
	if err != nil {
		return nil, errors.Wrap(err, "get virtual switches")
	}
	for _, r := range records {
		if r.Class != "compHv" {
			continue
		}
		es := &ExternalSwitch{Role: "external_switch", FabricSt: "external"}
		if err := es.populateVirtual(r); err != nil {
			return nil, errors.Wrap(err, "populate virtual switch")
		}
		if err := es.getNeighborInfo(ctx, getter); err != nil {
			return nil, errors.Wrapf(err, "virtual switch %q neighbor info", es.Dn)
		}
		switches = append(switches, es)
	}

	return switches, nil
}

var physIfPattern = regexp.MustCompile(`phys-\[(.+)\]`)

// getNeighborInfo walks from the loose node's links to the LLDP adjacency on
// the fabric port facing it and fills in the neighbor's ip, name and mac.
// Port channels are followed through their last bundled member port.
func (es *ExternalSwitch) getNeighborInfo(ctx context.Context, getter mo.Getter) error {
	children, err := getter.Get(ctx, "/api/mo/"+es.Dn+".json?query-target=children")
	if err != nil {
		return err
	}

	lldpDN := ""
	for _, child := range children {
		switch child.Class {
		case "fabricLooseLink":
			portDN := child.Attributes["portDn"]
			pod, node, perr := mo.ParseNodeDN(portDN)
			if perr != nil {
				continue
			}
			if m := physIfPattern.FindStringSubmatch(portDN); m != nil {
				lldpDN = lldpAdjacencyDN(pod, node, m[1])
				continue
			}
			// a port channel: follow the aggregate to a member port
			agg, gerr := getter.Get(ctx, "/api/mo/"+portDN+".json?query-target=self")
			if gerr != nil {
				return gerr
			}
			if len(agg) > 0 && agg[0].Class == "pcAggrIf" {
				lldpDN = lldpAdjacencyDN(pod, node, agg[0].Attributes["lastBundleMbr"])
			}
		case "fabricProtLooseLink":
			portDN := child.Attributes["portDn"]
			if portDN == "" {
				continue
			}
			pod, node, perr := mo.ParseNodeDN(portDN)
			if perr != nil {
				continue
			}
			members, gerr := getter.Get(ctx, "/api/mo/"+portDN+".json?query-target=children")
			if gerr != nil {
				return gerr
			}
			for _, member := range members {
				if member.Class == "pcRsMbrIfs" {
					lldpDN = lldpAdjacencyDN(pod, node, member.Attributes["tSKey"])
				}
			}
		}
	}

	es.State = "unknown"
	if lldpDN == "" {
		return nil
	}

	adj, err := getter.Get(ctx, "/api/mo/"+lldpDN+".json?query-target=self")
	if err != nil {
		return err
	}
	if len(adj) == 0 || adj[0].Class != "lldpAdjEp" {
		return nil
	}

	attrs := adj[0].Attributes
	es.IP = attrs["mgmtIp"]
	es.Name = attrs["sysName"]
	if attrs["chassisIdT"] == "mac" {
		es.MAC = attrs["chassisIdV"]
	} else {
		es.MAC = attrs["mgmtPortMac"]
	}
	return nil
}

func lldpAdjacencyDN(pod, node, port string) string {
	var b strings.Builder
	b.WriteString("topology/pod-")
	b.WriteString(pod)
	b.WriteString("/node-")
	b.WriteString(node)
	b.WriteString("/sys/lldp/inst/if-[")
	b.WriteString(port)
	b.WriteString("]/adj-1")
	return b.String()
}
