package phys

import (
	"context"
	"strconv"

	"github.com/opsmesh/fabinv/mo"
)

// Module carries the fields common to the slotted equipment variants:
// linecards, supervisors, fan trays and power supplies.
type Module struct {
	Slot             string
	Serial           string
	Model            string
	Descr            string
	HardwareVersion  string
	HardwareRevision string
	Type             string
	OperSt           string
	Dn               string
	ModifyTime       string
	Firmware         string
	Bios             string
}

// DN returns the module's distinguished name.
func (m Module) DN() string {
	return m.Dn
}

// getFirmware reads the running firmware of a module. Fan trays and power
// supplies have no readable firmware; callers for those variants skip this.
func getFirmware(ctx context.Context, getter mo.Getter, dn string) (version, bios string, err error) {
	records, err := getter.Get(ctx, "/api/mo/"+dn+"/running.json?query-target=self")
	if err != nil {
		return "", "", err
	}
	for _, r := range records {
		if r.Class == "firmwareCardRunning" {
			return r.Attributes["version"], r.Attributes["biosVer"], nil
		}
	}
	return "", "", nil
}

// idLess orders slot and fan ids numerically when both parse, lexically
// otherwise.
func idLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
