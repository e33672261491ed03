package main

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/pierrec/lz4"

	"github.com/devblok/vkbind/core"
	"github.com/devblok/vkbind/device"
)

// Report is everything vkinfo knows about the driver
type Report struct {
	Extensions   []extensionReport `json:"instanceExtensions"`
	Layers       []layerReport     `json:"layers"`
	Capabilities []string          `json:"capabilities"`
	Enabled      []string          `json:"enabled"`
	Adapters     []adapterReport   `json:"adapters"`
}

type extensionReport struct {
	Name        string `json:"name"`
	SpecVersion uint32 `json:"specVersion"`
}

type layerReport struct {
	Name                  string            `json:"name"`
	SpecVersion           string            `json:"specVersion"`
	ImplementationVersion uint32            `json:"implementationVersion"`
	Description           string            `json:"description"`
	Extensions            []extensionReport `json:"extensions"`
}

type queueFamilyReport struct {
	Count    uint32 `json:"count"`
	Graphics bool   `json:"graphics"`
	Compute  bool   `json:"compute"`
	Transfer bool   `json:"transfer"`
	Sparse   bool   `json:"sparseBinding"`
}

type adapterReport struct {
	Name          string              `json:"name"`
	Type          string              `json:"type"`
	DeviceID      int                 `json:"deviceId"`
	VendorID      int                 `json:"vendorId"`
	DriverVersion int                 `json:"driverVersion"`
	APIVersion    string              `json:"apiVersion"`
	Invalid       bool                `json:"invalid,omitempty"`
	Extensions    []string            `json:"extensions"`
	QueueFamilies []queueFamilyReport `json:"queueFamilies"`
	Memory        uint64              `json:"memory"`
	Features      []string            `json:"features"`
}

func extensionReports(exts []core.Extension) []extensionReport {
	out := make([]extensionReport, len(exts))
	for i, e := range exts {
		out[i] = extensionReport{Name: e.Name, SpecVersion: e.SpecVersion}
	}
	return out
}

// menuCapabilities lists the menu entries whose instance extensions are all
// among exts
func menuCapabilities(exts []core.Extension) []string {
	var offered core.CapabilitySet
	for _, e := range exts {
		caps, err := core.CapabilitiesForExtensions([]string{e.Name})
		if err != nil {
			continue
		}
		for _, c := range caps {
			if c.InstanceScoped() {
				offered = offered.With(c)
			}
		}
	}
	return offered.Names()
}

// collect runs the global queries on builder, then creates an instance from
// it to describe every adapter
func collect(builder *core.LoaderBuilder, cfg core.InstanceConfiguration) (Report, error) {
	var report Report

	exts, err := builder.InstanceExtensionProperties("")
	if err != nil {
		return report, err
	}
	report.Extensions = extensionReports(exts)
	report.Capabilities = menuCapabilities(exts)

	layers, err := builder.InstanceLayerProperties()
	if err != nil {
		return report, err
	}
	for _, l := range layers {
		layerExts, err := builder.InstanceExtensionProperties(l.Name)
		if err != nil {
			return report, err
		}
		report.Layers = append(report.Layers, layerReport{
			Name:                  l.Name,
			SpecVersion:           l.SpecVersion.String(),
			ImplementationVersion: l.ImplementationVersion,
			Description:           l.Description,
			Extensions:            extensionReports(layerExts),
		})
	}

	inst, err := core.NewInstance(builder, cfg)
	if err != nil {
		return report, err
	}
	defer inst.Destroy()
	report.Enabled = inst.Loader().Capabilities().Names()

	adapters, err := inst.Adapters()
	if err != nil {
		return report, err
	}
	for _, info := range device.DescribeAll(adapters) {
		report.Adapters = append(report.Adapters, adapterReportOf(info))
	}
	return report, nil
}

func adapterReportOf(info device.Info) adapterReport {
	r := adapterReport{
		Name:          info.Name,
		Type:          info.Type.String(),
		DeviceID:      info.ID,
		VendorID:      info.VendorID,
		DriverVersion: info.DriverVersion,
		APIVersion:    info.APIVersion.String(),
		Invalid:       info.Invalid,
		Extensions:    info.Extensions,
		Memory:        info.Memory,
		Features:      info.Features.Names(),
	}
	for _, f := range info.QueueFamilies {
		r.QueueFamilies = append(r.QueueFamilies, queueFamilyReport{
			Count:    f.QueueCount,
			Graphics: f.Graphics(),
			Compute:  f.Compute(),
			Transfer: f.Transfer(),
			Sparse:   f.SparseBinding(),
		})
	}
	return r
}

func isCompressed(path string) bool {
	return filepath.Ext(path) == ".lz4"
}

// writeReport encodes report as JSON, through an lz4 frame when compress
// is set
func writeReport(w io.Writer, report Report, indent, compress bool) error {
	if !compress {
		return encode(w, report, indent)
	}
	zw := lz4.NewWriter(w)
	if err := encode(zw, report, indent); err != nil {
		return err
	}
	return zw.Close()
}

func encode(w io.Writer, report Report, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
