package phys

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// Interface is a physical ethernet port.
type Interface struct {
	ID            string
	Name          string
	Descr         string
	PortType      string
	AdminStatus   string
	Speed         string
	MTU           string
	Layer         string
	Usage         string
	MonPolDn      string
	InterfaceType string
	ModuleID      string
	Port          string
	Dn            string

	// OperSt comes from the companion ethpmPhysIf record, "-" when the port
	// carries none.
	OperSt string

	// CDP and LLDP hold the resolved per-port discovery protocol state:
	// "enabled", "disabled", or "" when no policy is bound.
	CDP  string
	LLDP string
}

// DN implements Entity.
func (i *Interface) DN() string {
	return i.Dn
}

// Kind implements Entity.
func (i *Interface) Kind() Kind {
	return KindInterface
}

// CDPEnabled reports whether a CDP policy is bound and enabled.
func (i *Interface) CDPEnabled() bool {
	return i.CDP == "enabled"
}

// LLDPEnabled reports whether an LLDP policy is bound and enabled.
func (i *Interface) LLDPEnabled() bool {
	return i.LLDP == "enabled"
}

func (i *Interface) populate(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&i.Dn, "dn"},
		{&i.ID, "id"},
		{&i.Name, "name"},
		{&i.Descr, "descr"},
		{&i.PortType, "portT"},
		{&i.AdminStatus, "adminSt"},
		{&i.Speed, "speed"},
		{&i.MTU, "mtu"},
		{&i.Layer, "layer"},
		{&i.Usage, "usage"},
		{&i.MonPolDn, "monPolDn"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	ifType, module, port, err := parseInterfaceDN(i.Dn)
	if err != nil {
		return err
	}
	i.InterfaceType = ifType
	i.ModuleID = module
	i.Port = port
	return nil
}

// parseInterfaceDN pulls the interface type, module and port out of a port
// dn. Both dn shapes in the wild are handled: "sys/intf/phys-[eth1/33]" and
// the older "sys/phys-[eth1/33]".
func parseInterfaceDN(dn string) (ifType, module, port string, err error) {
	segs := strings.Split(dn, "/")
	for n, seg := range segs {
		i := strings.Index(seg, "-[")
		if i < 0 || n+1 >= len(segs) {
			continue
		}
		name := seg[i+2:] // e.g. "eth1"
		if len(name) < 4 {
			break
		}
		ifType = name[:3]
		module = name[3:]
		port = strings.TrimSuffix(segs[n+1], "]")
		return ifType, module, port, nil
	}
	return "", "", "", errors.Errorf("dn %q is not an interface dn", dn)
}

// GetInterfaces returns the physical interfaces of the switch. With an ifName
// such as "eth1/33" only that port is read. The operational state is merged
// in from the companion ethpmPhysIf records, and the per-port CDP and LLDP
// discovery protocol state is resolved through the bound policies.
func GetInterfaces(ctx context.Context, getter mo.Getter, ifName string) ([]*Interface, error) {
	cdpPolicies, err := discoveryPolicies(ctx, getter, "cdpIfPol", "adminSt")
	if err != nil {
		return nil, errors.Wrap(err, "cdp policies")
	}
	lldpPolicies, err := discoveryPolicies(ctx, getter, "lldpIfPol", "adminTxSt")
	if err != nil {
		return nil, errors.Wrap(err, "lldp policies")
	}

	var ifURL, ethURL string
	if ifName != "" {
		dn := "sys/intf/phys-[" + ifName + "]"
		ifURL = "/api/mo/" + dn + ".json?query-target=self"
		ethURL = "/api/mo/" + dn + "/phys.json?query-target=self"
	} else {
		ifURL = "/api/node/class/l1PhysIf.json?query-target=self"
		ethURL = "/api/node/class/ethpmPhysIf.json?query-target=self"
	}

	ifRecords, err := getter.Get(ctx, ifURL)
	if err != nil {
		return nil, errors.Wrap(err, "get interfaces")
	}
	ethRecords, err := getter.Get(ctx, ethURL)
	if err != nil {
		return nil, errors.Wrap(err, "get ethernet state")
	}

	// re-index the ethernet state so it can be joined by dn
	ethByDN := make(map[string]mo.Record, len(ethRecords))
	for _, r := range ethRecords {
		if r.Class == "ethpmPhysIf" {
			ethByDN[r.DN()] = r
		}
	}

	interfaces := make([]*Interface, 0, len(ifRecords))
	for _, r := range ifRecords {
		if r.Class != "l1PhysIf" {
			continue
		}
		intf := &Interface{}
		if err := intf.populate(r); err != nil {
			return nil, errors.Wrap(err, "populate interface")
		}
		intf.OperSt = "-"
		if eth, ok := ethByDN[intf.Dn+"/phys"]; ok {
			if operSt := eth.Attributes["operSt"]; operSt != "" {
				intf.OperSt = operSt
			}
		}
		interfaces = append(interfaces, intf)
	}

	if err := resolveDiscoveryState(ctx, getter, interfaces, "cdp", cdpPolicies); err != nil {
		return nil, errors.Wrap(err, "cdp state")
	}
	if err := resolveDiscoveryState(ctx, getter, interfaces, "lldp", lldpPolicies); err != nil {
		return nil, errors.Wrap(err, "lldp state")
	}
	return interfaces, nil
}

// discoveryPolicies maps policy names to their admin state for one discovery
// protocol policy class.
func discoveryPolicies(ctx context.Context, getter mo.Getter, class, stateAttr string) (map[string]string, error) {
	records, err := getter.Get(ctx, "/api/node/class/"+class+".json?query-target=self")
	if err != nil {
		return nil, err
	}
	policies := map[string]string{}
	for _, r := range records {
		if r.Class == class {
			policies[r.Attributes["name"]] = r.Attributes[stateAttr]
		}
	}
	return policies, nil
}

// resolveDiscoveryState walks the policy consumer relations under l1PhysIf
// and marks each bound interface with its policy's admin state.
func resolveDiscoveryState(ctx context.Context, getter mo.Getter, interfaces []*Interface, prot string, policies map[string]string) error {
	var relationClass, policyMarker, relationMarker string
	switch prot {
	case "cdp":
		relationClass = "l1RsCdpIfPolCons"
		policyMarker = "/cdpIfP-"
		relationMarker = "/rscdpIfPolCons"
	case "lldp":
		relationClass = "l1RsLldpIfPolCons"
		policyMarker = "/lldpIfP-"
		relationMarker = "/rslldpIfPolCons"
	default:
		return errors.Errorf("unknown discovery protocol %q", prot)
	}

	records, err := getter.Get(ctx, "/api/node/class/l1PhysIf.json?query-target=subtree&target-subtree-class="+relationClass)
	if err != nil {
		return err
	}

	byPort := make(map[string]*Interface, len(interfaces))
	for _, intf := range interfaces {
		byPort[intf.InterfaceType+intf.ModuleID+"/"+intf.Port] = intf
	}

	for _, r := range records {
		if r.Class != relationClass {
			continue
		}
		parts := strings.SplitN(r.Attributes["tDn"], policyMarker, 2)
		if len(parts) != 2 {
			continue
		}
		policyName := parts[1]
		intfDN := strings.SplitN(r.DN(), relationMarker, 2)[0]
		ifType, module, port, err := parseInterfaceDN(intfDN)
		if err != nil {
			continue
		}
		intf, ok := byPort[ifType+module+"/"+port]
		if !ok {
			continue
		}
		if policies[policyName] == "enabled" {
			setDiscoveryState(intf, prot, "enabled")
		} else {
			setDiscoveryState(intf, prot, "disabled")
		}
	}
	return nil
}

func setDiscoveryState(intf *Interface, prot, state string) {
	if prot == "cdp" {
		intf.CDP = state
	} else {
		intf.LLDP = state
	}
}
