package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/pinpool/internal/config"
	"github.com/utkarsh5026/pinpool/internal/cpu"
	"github.com/utkarsh5026/pinpool/pool"
)

var (
	bold   = color.New(color.Bold)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

func printHeader(p config.Profile) {
	_, _ = bold.Println(strings.Repeat("=", 60))
	_, _ = bold.Printf("  %s\n", p.Name)
	_, _ = bold.Println(strings.Repeat("=", 60))

	workers := strconv.Itoa(p.WorkerCount())
	if len(p.Affinity) > 0 {
		workers += " " + formatAffinity(p.Affinity)
	}
	fmt.Printf("  Workers:  %s (capacity %d)\n", workers, p.MaxThreads)
	fmt.Printf("  Tasks:    %s x %s busy\n", formatNumber(p.Tasks), p.Work)

	mode := p.Mode
	switch p.Mode {
	case config.ModeHash:
		mode += fmt.Sprintf(" (hash %d)", p.Hash)
	case config.ModeKey:
		mode += fmt.Sprintf(" (%d keys)", p.Keys)
	}
	fmt.Printf("  Routing:  %s\n", mode)
	if p.Rate > 0 {
		fmt.Printf("  Rate:     %.0f/s, burst %d\n", p.Rate, p.Burst)
	}
	fmt.Println()
}

func renderResult(r result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Worker", "CPU", "Pinned", "Executed", "Failed", "Share")

	total := r.stats.Executed()
	for _, w := range r.stats.Workers {
		share := "-"
		if total > 0 {
			share = fmt.Sprintf("%.1f%%", 100*float64(w.Executed)/float64(total))
		}
		_ = table.Append(
			strconv.Itoa(w.ID),
			formatCPU(w.Affinity),
			formatPinned(w),
			formatNumber(int(w.Executed)),
			strconv.FormatInt(w.Failed, 10),
			share,
		)
	}

	if err := table.Render(); err != nil {
		_, _ = red.Println("Error rendering worker table:", err)
	}

	fmt.Println()
	_, _ = bold.Printf("  Completed %s tasks in %s", formatNumber(r.pushed), r.elapsed.Round(time.Millisecond))
	if r.elapsed > 0 {
		_, _ = bold.Printf(" (%s tasks/sec)", formatNumber(int(float64(r.pushed)/r.elapsed.Seconds())))
	}
	fmt.Println()
	if r.failed > 0 {
		_, _ = red.Printf("  %d tasks failed\n", r.failed)
	}
	if r.pushed > 0 {
		fmt.Printf("  Mean busy time per task: %s\n", (r.busyTime / time.Duration(r.pushed)).Round(time.Microsecond))
	}
}

func printCPUs() {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Property", "Value")

	_ = table.Append("GOOS", runtime.GOOS)
	_ = table.Append("Logical CPUs", strconv.Itoa(cpu.NumCPU()))
	_ = table.Append("GOMAXPROCS", strconv.Itoa(runtime.GOMAXPROCS(0)))

	allowed, err := cpu.Allowed()
	if err != nil {
		_ = table.Append("Pinnable CPUs", "unsupported: "+err.Error())
	} else {
		_ = table.Append("Pinnable CPUs", formatAffinity(allowed))
	}

	if err := table.Render(); err != nil {
		_, _ = red.Println("Error rendering cpu table:", err)
	}
}

func formatCPU(affinity int) string {
	if affinity == pool.Unpinned {
		return "-"
	}
	return strconv.Itoa(affinity)
}

func formatPinned(w pool.WorkerStats) string {
	switch {
	case w.Pinned:
		return green.Sprint("yes")
	case w.Affinity != pool.Unpinned:
		return yellow.Sprint("failed")
	default:
		return "no"
	}
}

func formatAffinity(cpus []int) string {
	parts := make([]string, len(cpus))
	for i, c := range cpus {
		parts[i] = strconv.Itoa(c)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// formatNumber formats an integer with comma separators
func formatNumber(n int) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	s := strconv.Itoa(n)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			_, _ = b.WriteString(",")
		}
		_, _ = b.WriteRune(c)
	}
	return b.String()
}
