package phys

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

var validRoles = map[string]bool{
	"spine":            true,
	"leaf":             true,
	"controller":       true,
	"vleaf":            true,
	"vip":              true,
	"protection-chain": true,
	"unsupported":      true,
}

// VPCInfo describes a leaf's virtual port-channel peering, read from vpcInst
// and vpcDom.
type VPCInfo struct {
	AdminState       string
	OperState        string
	DomainID         string
	SystemMAC        string
	LocalMAC         string
	MonitoringPolicy string
	PeerIP           string
	PeerMAC          string
	PeerVersion      string
	PeerState        string
	VTEPIP           string
	VTEPMAC          string
	OperRole         string
}

// Node is a managed fabric node: a switch or controller appliance.
type Node struct {
	Name       string
	ID         string
	Pod        string
	NodeID     string
	Role       string
	Serial     string
	Model      string
	Vendor     string
	FabricSt   string
	Dn         string
	ModifyTime string

	// populated from the node's working data
	IPAddress         string
	TEPIP             string
	MACAddress        string
	State             string
	Mode              string
	OperSt            string
	OperStQual        string
	Descr             string
	OOBMgmtIP         string
	InbMgmtIP         string
	SystemUptime      string
	Firmware          string
	Health            string
	NumPorts          int
	NumFanSlots       int
	NumFanModules     int
	NumLcSlots        int
	NumLcModules      int
	NumPsSlots        int
	NumPsModules      int
	NumSupSlots       int
	NumSupModules     int
	LoadBalancingMode string
	VPC               *VPCInfo
}

// DN implements Entity.
func (n *Node) DN() string {
	return n.Dn
}

// Kind implements Entity.
func (n *Node) Kind() Kind {
	return KindNode
}

func (n *Node) populate(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&n.Name, "name"},
		{&n.ID, "id"},
		{&n.Role, "role"},
		{&n.Serial, "serial"},
		{&n.Model, "model"},
		{&n.Vendor, "vendor"},
		{&n.FabricSt, "fabricSt"},
		{&n.Dn, "dn"},
		{&n.ModifyTime, "modTs"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	if !validRoles[n.Role] {
		return errors.Errorf("node %q has invalid role %q", n.Dn, n.Role)
	}

	pod, node, err := mo.ParseNodeDN(n.Dn)
	if err != nil {
		return err
	}
	n.Pod = pod
	n.NodeID = node
	return nil
}

// ChassisType derives the chassis type from the model number: the first
// hyphen-delimited field, lowercased.
func (n *Node) ChassisType() string {
	if n.Model == "" {
		return ""
	}
	return strings.ToLower(strings.SplitN(n.Model, "-", 2)[0])
}

// GetNodes returns all fabric nodes.
func GetNodes(ctx context.Context, getter mo.Getter) ([]*Node, error) {
	records, err := getModules(ctx, getter, KindNode, "")
	if err != nil {
		return nil, err
	}

	nodes := make([]*Node, 0, len(records))
	for _, r := range records {
		if r.Class != mo.ClassFabricNode {
			continue
		}
		n := &Node{}
		if err := n.populate(r); err != nil {
			return nil, errors.Wrap(err, "populate node")
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// WorkingData fetches and indexes the node's system subtree: everything this
// node needs for enrichment in one bulk query.
func (n *Node) WorkingData(ctx context.Context, getter mo.Getter, options ...mo.Option) (*mo.WorkingData, error) {
	w := mo.New(options...)
	if err := w.Query(ctx, getter, "/api/mo/"+n.Dn+"/sys.json", SwitchClasses(KindNode)...); err != nil {
		return nil, errors.Wrapf(err, "node %q working data", n.Dn)
	}
	return w, nil
}

// Enrich fills in the node fields that come from the system subtree rather
// than from the fabricNode record itself.
func (n *Node) Enrich(w *mo.WorkingData) {
	n.topSystemInfo(w)
	n.slotInfo(w)
	n.firmwareInfo(w)
	n.vpcInfo(w)
}

func (n *Node) topSystemInfo(w *mo.WorkingData) {
	if r, ok := w.GetObject(n.Dn + "/sys"); ok && r.Class == "topSystem" {
		n.IPAddress = r.Attributes["address"]
		n.TEPIP = n.IPAddress
		n.MACAddress = r.Attributes["fabricMAC"]
		n.State = r.Attributes["state"]
		n.Mode = r.Attributes["mode"]
		n.OOBMgmtIP = r.Attributes["oobMgmtAddr"]
		n.InbMgmtIP = r.Attributes["inbMgmtAddr"]
		n.SystemUptime = r.Attributes["systemUpTime"]
	}

	if r, ok := w.GetObject(n.Dn + "/sys/ch"); ok && r.Class == "eqptCh" {
		n.OperSt = r.Attributes["operSt"]
		n.OperStQual = r.Attributes["operStQual"]
		n.Descr = r.Attributes["descr"]
	}
}

func (n *Node) slotInfo(w *mo.WorkingData) {
	n.NumPorts = len(w.GetSubtree("l1PhysIf", n.Dn+"/sys"))
	n.NumFanSlots, n.NumFanModules = countSlots(w, "eqptFtSlot", n.Dn+"/sys")
	n.NumLcSlots, n.NumLcModules = countSlots(w, "eqptLCSlot", n.Dn+"/sys/ch")
	n.NumPsSlots, n.NumPsModules = countSlots(w, "eqptPsuSlot", n.Dn+"/sys/ch")
	n.NumSupSlots, n.NumSupModules = countSlots(w, "eqptSupCSlot", n.Dn+"/sys/ch")

	n.LoadBalancingMode = "unknown"
	for _, r := range w.GetSubtree("topoctrlLbP", n.Dn+"/sys") {
		if mode, ok := r.Attributes["dlbMode"]; ok {
			n.LoadBalancingMode = mode
		}
	}
}

// countSlots counts the slots of one class under dn and how many of them
// carry an inserted module.
func countSlots(w *mo.WorkingData, class, dn string) (slots, inserted int) {
	records := w.GetSubtree(class, dn)
	for _, r := range records {
		if r.Attributes["operSt"] == "inserted" {
			inserted++
		}
	}
	return len(records), inserted
}

func (n *Node) firmwareInfo(w *mo.WorkingData) {
	if n.Role == "controller" {
		return
	}
	if r, ok := w.GetObject(n.Dn + "/sys/ch/supslot-1/sup/running"); ok && r.Class == "firmwareCardRunning" {
		n.Firmware = r.Attributes["version"]
	}
}

// vpcInfo runs for leaf switches only. Peering details are read from vpcDom
// when the vpcInst admin state is enabled.
func (n *Node) vpcInfo(w *mo.WorkingData) {
	if n.Role != "leaf" {
		return
	}

	partialDN := "topology/pod-" + n.Pod + "/node-" + n.NodeID + "/sys/vpc/inst"
	info := &VPCInfo{AdminState: "disabled", OperState: "inactive"}
	if r, ok := w.GetObject(partialDN); ok && r.Class == "vpcInst" {
		info.AdminState = r.Attributes["adminSt"]
	}

	if info.AdminState == "enabled" {
		if doms := w.GetSubtree("vpcDom", partialDN); len(doms) > 0 {
			attrs := doms[0].Attributes
			info.OperState = "active"
			info.DomainID = attrs["id"]
			info.SystemMAC = attrs["sysMac"]
			info.LocalMAC = attrs["localMAC"]
			info.MonitoringPolicy = attrs["monPolDn"]
			info.PeerIP = attrs["peerIp"]
			info.PeerMAC = attrs["peerMAC"]
			info.PeerVersion = attrs["peerVersion"]
			info.PeerState = attrs["peerSt"]
			info.VTEPIP = attrs["virtualIp"]
			info.VTEPMAC = attrs["vpcMAC"]
			info.OperRole = attrs["operRole"]
		}
	}

	n.VPC = info
}

// GetHealth reads the node's latest health score. Controllers carry no
// health score.
func (n *Node) GetHealth(ctx context.Context, getter mo.Getter) error {
	if n.Role == "controller" {
		return nil
	}

	records, err := getter.Get(ctx, "/api/mo/"+n.Dn+"/sys.json?rsp-subtree-include=stats&rsp-subtree-class=fabricNodeHealth5min")
	if err != nil {
		return errors.Wrapf(err, "node %q health", n.Dn)
	}
	for _, r := range records {
		if r.Class != "topSystem" {
			continue
		}
		for _, child := range r.Children {
			if child.Class == "fabricNodeHealth5min" {
				n.Health = child.Attributes["healthLast"]
				return nil
			}
		}
	}
	return nil
}
