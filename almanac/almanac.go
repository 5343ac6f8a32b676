package almanac

import (
	"os"

	"github.com/pkg/errors"

	"github.com/haldring/daffodil/config"
	"github.com/haldring/daffodil/internal/daf"
	"github.com/haldring/daffodil/internal/kernelerr"
	"github.com/haldring/daffodil/internal/xlog"
	"github.com/haldring/daffodil/pck"
)

type loadedEphemerisFile struct {
	file      *daf.File
	summaries []daf.Summary
}

type loadedOrientationFile struct {
	file      *daf.File
	summaries []daf.Summary
}

// Almanac is the multi-kernel engine: a bounded, reverse-load-order slot
// table of SPK and BPC files plus an optional planetary-constants dataset.
// It owns every loaded buffer for its lifetime: dropping the Almanac
// releases all of them simultaneously.
type Almanac struct {
	limits  config.Limits
	spk     []loadedEphemerisFile
	bpc     []loadedOrientationFile
	dataset *pck.Dataset
}

// New returns an empty almanac with the engine's built-in limits.
func New() *Almanac {
	return NewWithLimits(config.Defaults())
}

// NewWithLimits returns an empty almanac with caller-supplied limits,
// typically sourced from config.Load.
func NewWithLimits(limits config.Limits) *Almanac {
	return &Almanac{limits: limits}
}

// LoadSPK parses buf as an ephemeris-flavored DAF and appends it to the
// slot table. Later LoadSPK calls shadow earlier ones for overlapping
// coverage.
func (a *Almanac) LoadSPK(buf []byte) error {
	if len(a.spk) >= a.limits.MaxLoaded {
		return errors.Wrapf(kernelerr.ErrLookupFull, "cannot load SPK: already holding %d files", a.limits.MaxLoaded)
	}
	f, err := daf.Open(buf)
	if err != nil {
		return errors.Wrap(err, "opening SPK")
	}
	sums, err := f.Summaries()
	if err != nil {
		return errors.Wrap(err, "reading SPK summaries")
	}
	a.spk = append(a.spk, loadedEphemerisFile{file: f, summaries: sums})
	xlog.Debugf("almanac: loaded SPK %q with %d segments (slot %d/%d)", f.Hdr.InternalName, len(sums), len(a.spk), a.limits.MaxLoaded)
	return nil
}

// LoadSPKFile is a thin convenience wrapper reading path with os.ReadFile
// before calling LoadSPK; callers that already hold the bytes (e.g. fetched
// over a non-filesystem channel) should call LoadSPK directly, since the
// engine itself never touches the filesystem after construction.
func (a *Almanac) LoadSPKFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading SPK file %q", path)
	}
	return a.LoadSPK(buf)
}

// UnloadSPK removes the most recently loaded SPK file, restoring whatever
// file previously shadowed it for overlapping coverage.
func (a *Almanac) UnloadSPK() error {
	if len(a.spk) == 0 {
		return errors.Wrap(kernelerr.ErrNoLoadedData, "no SPK files loaded")
	}
	a.spk = a.spk[:len(a.spk)-1]
	return nil
}

// LoadBPC parses buf as an orientation-flavored DAF and appends it to the
// slot table.
func (a *Almanac) LoadBPC(buf []byte) error {
	if len(a.bpc) >= a.limits.MaxLoaded {
		return errors.Wrapf(kernelerr.ErrLookupFull, "cannot load BPC: already holding %d files", a.limits.MaxLoaded)
	}
	f, err := daf.Open(buf)
	if err != nil {
		return errors.Wrap(err, "opening BPC")
	}
	sums, err := f.Summaries()
	if err != nil {
		return errors.Wrap(err, "reading BPC summaries")
	}
	a.bpc = append(a.bpc, loadedOrientationFile{file: f, summaries: sums})
	xlog.Debugf("almanac: loaded BPC %q with %d segments (slot %d/%d)", f.Hdr.InternalName, len(sums), len(a.bpc), a.limits.MaxLoaded)
	return nil
}

// LoadBPCFile mirrors LoadSPKFile for orientation kernels.
func (a *Almanac) LoadBPCFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading BPC file %q", path)
	}
	return a.LoadBPC(buf)
}

// UnloadBPC removes the most recently loaded BPC file.
func (a *Almanac) UnloadBPC() error {
	if len(a.bpc) == 0 {
		return errors.Wrap(kernelerr.ErrNoLoadedData, "no BPC files loaded")
	}
	a.bpc = a.bpc[:len(a.bpc)-1]
	return nil
}

// LoadDataset decodes buf as a DER-encoded planetary-constants dataset
// (pck.Unmarshal) and installs it, replacing any previously loaded dataset.
// A single dataset slot is sufficient: unlike SPK/BPC, the dataset has no
// "most recent wins" shadowing semantics — it is a single fallback source,
// not a stack of candidates.
func (a *Almanac) LoadDataset(buf []byte) error {
	ds, err := pck.Unmarshal(buf, a.limits.MaxLUTEntries)
	if kernelerr.Classify(err) == kernelerr.KindIntegrityMismatch {
		xlog.Warnf("almanac: planetary-constants dataset loaded with integrity mismatch, usable by-id only")
	} else if err != nil {
		return errors.Wrap(err, "loading planetary-constants dataset")
	}
	a.dataset = ds
	return nil
}

// LoadDatasetFile mirrors LoadSPKFile for the planetary-constants dataset.
func (a *Almanac) LoadDatasetFile(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading dataset file %q", path)
	}
	return a.LoadDataset(buf)
}
