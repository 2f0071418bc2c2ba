package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"probsched/internal/requests"
	"probsched/internal/responses"
	"probsched/internal/schedulers"
	"probsched/internal/store"
	"probsched/internal/trace"
)

// Slice is a contiguous stretch of the CPU timeline. PID 0 means idle.
type Slice struct {
	PID   int
	Start int
	Stop  int
}

// Timeline folds dispatch and idle events into slices, merging adjacent
// stretches that belong to the same process.
func Timeline(events []trace.Event) []Slice {
	var out []Slice
	for _, e := range events {
		var pid int
		switch e.Kind {
		case trace.KindDispatch:
			pid = e.PID
		case trace.KindIdle:
			pid = 0
		default:
			continue
		}
		stop := e.Time + max(e.Duration, 1)
		if n := len(out); n > 0 && out[n-1].PID == pid && out[n-1].Stop == e.Time {
			out[n-1].Stop = stop
			continue
		}
		out = append(out, Slice{PID: pid, Start: e.Time, Stop: stop})
	}
	return out
}

func Title(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*2))
}

func Gantt(w io.Writer, slices []Slice) {
	if len(slices) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, s := range slices {
		label := "idle"
		if s.PID != 0 {
			label = "P" + strconv.Itoa(s.PID)
		}
		padding := strings.Repeat(" ", max(8-len(label), 0)/2)
		_, _ = fmt.Fprint(w, padding, label, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, s := range slices {
		_, _ = fmt.Fprint(w, s.Start, "\t")
		if i == len(slices)-1 {
			_, _ = fmt.Fprint(w, s.Stop)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

// Schedule prints one run: optional timeline, per-process table, totals.
func Schedule(w io.Writer, r responses.ScheduleResponse) {
	Title(w, schedulers.Algorithm(r.Algorithm).Title())
	Gantt(w, Timeline(r.Trace))

	_, _ = fmt.Fprintln(w, "Schedule table")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Priority", "Burst", "Arrival", "Deadline", "Start", "Exit", "Wait", "Turnaround", "Missed"})
	rows := make([][]string, 0, len(r.Details))
	for _, d := range r.Details {
		rows = append(rows, []string{
			strconv.Itoa(d.ProcessId),
			strconv.Itoa(d.Priority),
			strconv.Itoa(d.BurstTime),
			strconv.Itoa(d.ArrivalTime),
			optional(d.Deadline),
			strconv.Itoa(d.FirstRunTime),
			exit(d),
			fmt.Sprintf("%.0f", d.WaitingTime),
			fmt.Sprintf("%.0f", d.TurnAroundTime),
			missed(d),
		})
	}
	table.AppendBulk(rows)
	table.SetFooter([]string{"", "", "", "", "", "",
		fmt.Sprintf("Makespan\n%d", r.Makespan),
		fmt.Sprintf("Average\n%.2f", r.AverageWaitingTime),
		fmt.Sprintf("Average\n%.2f", r.AverageTurnAroundTime),
		fmt.Sprintf("Misses\n%d", r.DeadlineMisses)})
	table.Render()
	Stats(w, r)
}

func Stats(w io.Writer, r responses.ScheduleResponse) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"Average waiting time", fmt.Sprintf("%.2f", r.AverageWaitingTime)},
		{"Average turnaround time", fmt.Sprintf("%.2f", r.AverageTurnAroundTime)},
		{"Average response time", fmt.Sprintf("%.2f", r.AverageResponseTime)},
		{"CPU utilization", fmt.Sprintf("%.2f%%", r.CpuUtilization)},
		{"Throughput", fmt.Sprintf("%.4f/t", r.CpuThroughput)},
		{"Idle time", fmt.Sprintf("%.0f", r.IdleTime)},
		{"Deadline misses", strconv.Itoa(r.DeadlineMisses)},
		{"Release misses", strconv.Itoa(r.ReleaseMisses)},
	})
	if r.HorizonExceeded {
		table.Append([]string{"Horizon exceeded", "yes"})
	}
	table.Render()
}

// Comparison prints one row per discipline.
func Comparison(w io.Writer, c responses.CompareResponse) {
	Title(w, "Comparison")
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Algorithm", "Avg wait", "Avg turnaround", "Avg response", "CPU %", "Throughput", "Deadline misses", "Release misses"})
	for _, r := range c.Results {
		name := schedulers.Algorithm(r.Algorithm).Title()
		if r.HorizonExceeded {
			name += " (horizon)"
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%.2f", r.AverageWaitingTime),
			fmt.Sprintf("%.2f", r.AverageTurnAroundTime),
			fmt.Sprintf("%.2f", r.AverageResponseTime),
			fmt.Sprintf("%.2f", r.CpuUtilization),
			fmt.Sprintf("%.4f", r.CpuThroughput),
			strconv.Itoa(r.DeadlineMisses),
			strconv.Itoa(r.ReleaseMisses),
		})
	}
	table.Render()
}

func Jobs(w io.Writer, jobs []requests.Job) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Priority", "Period", "Deadline"})
	for _, j := range jobs {
		table.Append([]string{
			strconv.Itoa(j.ProcessId),
			strconv.Itoa(j.ArrivalTime),
			strconv.Itoa(j.BurstTime),
			strconv.Itoa(j.Priority),
			optional(j.Period),
			optional(j.Deadline),
		})
	}
	table.Render()
}

func Workloads(w io.Writer, list []store.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Seed", "Jobs", "Updated"})
	for _, s := range list {
		table.Append([]string{
			s.Name,
			strconv.FormatInt(s.Seed, 10),
			strconv.Itoa(s.JobCount),
			s.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	table.Render()
}

func optional(v int) string {
	if v <= 0 {
		return "-"
	}
	return strconv.Itoa(v)
}

func exit(d responses.ProcessResponse) string {
	if d.Unfinished {
		return "-"
	}
	return strconv.Itoa(d.CompletionTime)
}

func missed(d responses.ProcessResponse) string {
	switch {
	case d.DeadlineMissCount > 0:
		return fmt.Sprintf("yes (%d)", d.DeadlineMissCount)
	case d.MissedDeadline:
		return "yes"
	default:
		return "no"
	}
}
