package phys

import (
	"context"

	"github.com/pkg/errors"

	"github.com/opsmesh/fabinv/mo"
)

// ProcessCPU holds the 5 minute cpu counters of one process.
type ProcessCPU struct {
	AvgExecAvg  string
	AvgExecMax  string
	AvgExecLast string
	MaxExecAvg  string
	MaxExecMax  string
	MaxExecLast string
	InvokedAvg  string
	InvokedMax  string
	InvokedLast string
	UsageAvg    string
	UsageMax    string
	UsageLast   string
}

// ProcessMem holds the 5 minute memory counters of one process.
type ProcessMem struct {
	AllocAvg  string
	AllocMax  string
	AllocLast string
	UsedAvg   string
	UsedMax   string
	UsedLast  string
}

// Process is one process running on the switch, with its current cpu and
// memory stats.
type Process struct {
	ID     string
	Name   string
	OperSt string
	Dn     string
	CPU    ProcessCPU
	Mem    ProcessMem
}

// DN implements Entity.
func (p *Process) DN() string {
	return p.Dn
}

// Kind implements Entity.
func (p *Process) Kind() Kind {
	return KindProcess
}

func (p *Process) populate(r mo.Record) error {
	for _, f := range []struct {
		dst *string
		key string
	}{
		{&p.ID, "id"},
		{&p.Name, "name"},
		{&p.OperSt, "operSt"},
		{&p.Dn, "dn"},
	} {
		v, err := r.Attr(f.key)
		if err != nil {
			return err
		}
		*f.dst = v
	}
	p.populateStats(r.Children)
	return nil
}

func (p *Process) populateStats(children []mo.Record) {
	for _, child := range children {
		switch child.Class {
		case "procProcCPU5min":
			attrs := child.Attributes
			p.CPU = ProcessCPU{
				AvgExecAvg:  attrs["avgExecAvg"],
				AvgExecMax:  attrs["avgExecMax"],
				AvgExecLast: attrs["avgExecLast"],
				MaxExecAvg:  attrs["maxExecAvg"],
				MaxExecMax:  attrs["maxExecMax"],
				MaxExecLast: attrs["maxExecLast"],
				InvokedAvg:  attrs["invokedAvg"],
				InvokedMax:  attrs["invokedMax"],
				InvokedLast: attrs["invokedLast"],
				UsageAvg:    attrs["usageAvg"],
				UsageMax:    attrs["usageMax"],
				UsageLast:   attrs["usageLast"],
			}
		case "procProcMem5min":
			attrs := child.Attributes
			p.Mem = ProcessMem{
				AllocAvg:  attrs["allocedAvg"],
				AllocMax:  attrs["allocedMax"],
				AllocLast: attrs["allocedLast"],
				UsedAvg:   attrs["usedAvg"],
				UsedMax:   attrs["usedMax"],
				UsedLast:  attrs["usedLast"],
			}
		}
	}
}

// GetProcesses returns the processes running on the switch together with
// their current 5 minute cpu and memory stats.
func GetProcesses(ctx context.Context, getter mo.Getter) ([]*Process, error) {
	records, err := getter.Get(ctx, "/api/mo/sys/procsys.json?query-target=children&rsp-subtree-include=stats&rsp-subtree-class=statsCurr")
	if err != nil {
		return nil, errors.Wrap(err, "get processes")
	}

	processes := make([]*Process, 0, len(records))
	for _, r := range records {
		if r.Class != "procProc" {
			continue
		}
		p := &Process{}
		if err := p.populate(r); err != nil {
			return nil, errors.Wrap(err, "populate process")
		}
		processes = append(processes, p)
	}
	return processes, nil
}
