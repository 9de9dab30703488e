package cmd

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

// List the host resources available to the cpu tracers.
func ShowHostInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	logger.Noticef("host information\n%s", hostInfoTable())
	return nil
}

// Render a table with the host cpu model, core count and memory. Errors
// while querying the host are reported inside the table.
func hostInfoTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Host", "Value"})

	cpuInfo, err := cpu.Info()
	switch {
	case err != nil:
		table.Append([]string{"CPU", fmt.Sprintf("unavailable: %s", err.Error())})
	case len(cpuInfo) == 0:
		table.Append([]string{"CPU", "unavailable"})
	default:
		table.Append([]string{"CPU", cpuInfo[0].ModelName})
		table.Append([]string{"Clock", fmt.Sprintf("%.2f GHz", cpuInfo[0].Mhz/1000)})
	}

	if cores, err := cpu.Counts(true); err == nil {
		table.Append([]string{"Logical cores", fmt.Sprintf("%d", cores)})
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		table.Append([]string{"Memory", fmt.Sprintf("%.1f GB total, %.1f GB available", gigabytes(memInfo.Total), gigabytes(memInfo.Available))})
	} else {
		table.Append([]string{"Memory", fmt.Sprintf("unavailable: %s", err.Error())})
	}

	table.Render()
	return buf.String()
}

func gigabytes(n uint64) float64 {
	return float64(n) / (1024 * 1024 * 1024)
}
