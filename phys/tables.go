package phys

import (
	"sort"
	"strconv"

	"github.com/opsmesh/fabinv/mo"
	"github.com/opsmesh/fabinv/report"
)

// LinecardTable builds the linecard inventory report, ordered by slot.
func LinecardTable(linecards []*Linecard, title string) report.Table {
	t := report.Table{
		Title: title + "Linecards",
		Headers: []string{
			"Slot", "Model", "Ports", "Firmware", "Bios",
			"HW Ver", "Hw Rev", "Oper St", "Serial", "Modify Time",
		},
	}
	sorted := append([]*Linecard{}, linecards...)
	sort.SliceStable(sorted, func(i, j int) bool { return idLess(sorted[i].Slot, sorted[j].Slot) })
	for _, lc := range sorted {
		t.Append(lc.Slot, lc.Model, lc.NumPorts, lc.Firmware, lc.Bios,
			lc.HardwareVersion, lc.HardwareRevision, lc.OperSt, lc.Serial, lc.ModifyTime)
	}
	return t
}

// SupervisorTable builds the supervisor card report, ordered by slot.
func SupervisorTable(supervisors []*Supervisorcard, title string) report.Table {
	t := report.Table{
		Title: title + "Supervisors",
		Headers: []string{
			"Slot", "Model", "Ports", "Firmware", "Bios",
			"HW Ver", "Hw Rev", "Oper St", "Serial", "Modify Time",
		},
	}
	sorted := append([]*Supervisorcard{}, supervisors...)
	sort.SliceStable(sorted, func(i, j int) bool { return idLess(sorted[i].Slot, sorted[j].Slot) })
	for _, sc := range sorted {
		t.Append(sc.Slot, sc.Model, sc.NumPorts, sc.Firmware, sc.Bios,
			sc.HardwareVersion, sc.HardwareRevision, sc.OperSt, sc.Serial, sc.ModifyTime)
	}
	return t
}

// FantrayTable builds the fan tray report, one row per fan, trays ordered by
// slot and fans by id.
func FantrayTable(fantrays []*Fantray, title string) report.Table {
	t := report.Table{
		Title: title + "Fan Trays",
		Headers: []string{
			"Slot", "Model", "Name", "Tray Serial",
			"Fan ID", "Oper St", "Direction", "Speed", "Fan Serial",
		},
	}
	sorted := append([]*Fantray{}, fantrays...)
	sort.SliceStable(sorted, func(i, j int) bool { return idLess(sorted[i].Slot, sorted[j].Slot) })
	for _, ft := range sorted {
		fans := append([]*Fan{}, ft.Fans...)
		sort.SliceStable(fans, func(i, j int) bool { return idLess(fans[i].ID, fans[j].ID) })
		for _, fan := range fans {
			t.Append(ft.Slot, ft.Model, ft.Name, ft.Serial,
				"fan-"+fan.ID, fan.OperSt, fan.Direction, fan.Speed, fan.Serial)
		}
	}
	return t
}

// PowersupplyTable builds the power supply report, ordered by slot.
func PowersupplyTable(supplies []*Powersupply, title string) report.Table {
	t := report.Table{
		Title: title + "Power Supplies",
		Headers: []string{
			"Slot", "Model", "Source Power", "Oper St", "Fan State",
			"HW Ver", "Hw Rev", "Serial", "Uptime",
		},
	}
	sorted := append([]*Powersupply{}, supplies...)
	sort.SliceStable(sorted, func(i, j int) bool { return idLess(sorted[i].Slot, sorted[j].Slot) })
	for _, ps := range sorted {
		t.Append(ps.Slot, ps.Model, ps.VoltageSource, ps.OperSt, ps.FanStatus,
			ps.HardwareVersion, ps.HardwareRevision, ps.Serial, ps.ModifyTime)
	}
	return t
}

// NodeTable builds the basic switch information report, ordered by node id.
func NodeTable(nodes []*Node, title string) report.Table {
	t := report.Table{
		Title: title + "Basic Information",
		Headers: []string{
			"Name", "Pod ID", "Node ID", "Serial Number", "Model", "Role",
			"Fabric State", "State", "Firmware", "Health",
			"In-band managment IP", "Out-of-band managment IP",
			"Number of ports", "Number of Linecards (inserted)",
			"Number of Sups (inserted)", "Number of Fans (inserted)",
			"Number of Power Supplies (inserted)", "System Uptime",
			"Dynamic Load Balancing",
		},
	}
	sorted := append([]*Node{}, nodes...)
	sort.SliceStable(sorted, func(i, j int) bool { return idLess(sorted[i].NodeID, sorted[j].NodeID) })
	for _, n := range sorted {
		t.Append(n.Name, n.Pod, n.NodeID, n.Serial, n.Model, n.Role,
			n.FabricSt, n.State, n.Firmware, n.Health,
			n.InbMgmtIP, n.OOBMgmtIP,
			strconv.Itoa(n.NumPorts),
			slotSummary(n.NumLcSlots, n.NumLcModules),
			slotSummary(n.NumSupSlots, n.NumSupModules),
			slotSummary(n.NumFanSlots, n.NumFanModules),
			slotSummary(n.NumPsSlots, n.NumPsModules),
			n.SystemUptime, n.LoadBalancingMode)
	}
	return t
}

// slotSummary renders "slots(inserted)", e.g. "4(2)".
func slotSummary(slots, inserted int) string {
	return strconv.Itoa(slots) + "(" + strconv.Itoa(inserted) + ")"
}

// InterfaceTable builds the physical interface report, ordered by interface
// id.
func InterfaceTable(interfaces []*Interface, title string) report.Table {
	t := report.Table{
		Title: title + "Interfaces",
		Headers: []string{
			"Interface", "Type", "Admin St", "Oper St", "Speed", "MTU",
			"Layer", "Usage", "CDP", "LLDP", "Description",
		},
	}
	sorted := append([]*Interface{}, interfaces...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, intf := range sorted {
		t.Append(intf.ID, intf.PortType, intf.AdminStatus, intf.OperSt,
			intf.Speed, intf.MTU, intf.Layer, intf.Usage,
			intf.CDP, intf.LLDP, intf.Descr)
	}
	return t
}

// LinkTable builds the fabric link report, ordered by link id.
func LinkTable(links []*Link, title string) report.Table {
	t := report.Table{
		Title: title + "Links",
		Headers: []string{
			"Pod", "Link", "Port 1", "Port 2", "State", "Status",
		},
	}
	sorted := append([]*Link{}, links...)
	sort.SliceStable(sorted, func(i, j int) bool { return idLess(sorted[i].Link, sorted[j].Link) })
	for _, l := range sorted {
		t.Append(l.Pod, l.Link, l.PortID1(), l.PortID2(), l.LinkState, l.LinkStatus)
	}
	return t
}

// ExternalSwitchTable builds the unmanaged neighbor switch report, ordered by
// name.
func ExternalSwitchTable(switches []*ExternalSwitch, title string) report.Table {
	t := report.Table{
		Title: title + "External Switches",
		Headers: []string{
			"Name", "IP", "MAC", "Role", "Fabric State", "State", "Description",
		},
	}
	sorted := append([]*ExternalSwitch{}, switches...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
	for _, es := range sorted {
		t.Append(es.Name, es.IP, es.MAC, es.Role, es.FabricSt, es.State, es.Descr)
	}
	return t
}

// ProcessTable builds the process cpu and memory report, ordered by process
// name then id.
func ProcessTable(processes []*Process, title string) report.Table {
	t := report.Table{
		Title: title + "Process CPU and MEM",
		Headers: []string{
			"Name", "id", "Oper State", "Avg CPU Exec Avg", "Avg CPU Exec Last",
			"CPU Usage Avg", "CPU Usage Last", "Mem Alloc Avg", "Mem Alloc Last",
			"Mem Used Avg", "Mem Used Last",
		},
	}
	sorted := append([]*Process{}, processes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return idLess(sorted[i].ID, sorted[j].ID)
	})
	for _, p := range sorted {
		t.Append(p.Name, p.ID, p.OperSt,
			p.CPU.AvgExecAvg, p.CPU.AvgExecLast,
			p.CPU.UsageAvg, p.CPU.UsageLast,
			p.Mem.AllocAvg, p.Mem.AllocLast,
			p.Mem.UsedAvg, p.Mem.UsedLast)
	}
	return t
}

// VnidTable builds the vnid dictionary report, ordered by vnid.
func VnidTable(w *mo.WorkingData, title string) report.Table {
	t := report.Table{
		Title:   title + "Vnids",
		Headers: []string{"Vnid", "Name", "Type", "Context"},
	}
	vnids := w.Vnids()
	keys := make([]string, 0, len(vnids))
	for vnid := range vnids {
		keys = append(keys, vnid)
	}
	sort.SliceStable(keys, func(i, j int) bool { return idLess(keys[i], keys[j]) })
	for _, vnid := range keys {
		s := vnids[vnid]
		t.Append(vnid, s.Name, s.Type, s.Context)
	}
	return t
}
