package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/aitechroberts/deep-learning/internal/metrics"
	"github.com/aitechroberts/deep-learning/internal/nn"
)

const historyCapacity = 600

type TickMsg time.Time

// Model drives live training: each tick runs one epoch and refreshes the
// loss curve and stats panel.
type Model struct {
	trainer   *nn.Trainer
	train     []nn.Sample
	val       []nn.Sample
	accuracy  *metrics.Accuracy
	rng       *rand.Rand
	order     []int
	sched     nn.Schedule
	batchSize int
	epochs    int

	archName  string
	epoch     int
	lossHist  []float64
	valHist   []float64
	accHist   []float64
	lr        float64
	running   bool
	done      bool
	failed    error
	frameRate int
}

func NewModel(trainer *nn.Trainer, sched nn.Schedule, train, val []nn.Sample, batchSize, epochs int, seed int64, archName string, frameRate int) Model {
	acc := metrics.NewAccuracy()
	trainer.AddMetric(acc)

	order := make([]int, len(train))
	for i := range order {
		order[i] = i
	}

	if frameRate < 1 {
		frameRate = 30
	}

	return Model{
		trainer:   trainer,
		train:     train,
		val:       val,
		accuracy:  acc,
		rng:       rand.New(rand.NewSource(seed)),
		order:     order,
		sched:     sched,
		batchSize: batchSize,
		epochs:    epochs,
		archName:  archName,
		lossHist:  make([]float64, 0, historyCapacity),
		valHist:   make([]float64, 0, historyCapacity),
		accHist:   make([]float64, 0, historyCapacity),
		running:   true,
		frameRate: frameRate,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done && m.failed == nil {
			m = m.step()
		}
		return m, m.tick()
	}

	return m, nil
}

// step runs one epoch and records its stats.
func (m Model) step() Model {
	m.lr = m.sched.LearningRate(m.epoch)

	m.rng.Shuffle(len(m.order), func(i, j int) {
		m.order[i], m.order[j] = m.order[j], m.order[i]
	})

	trainLoss, err := m.trainer.TrainEpoch(m.train, m.order, m.lr, m.batchSize)
	if err != nil {
		m.failed = err
		return m
	}

	m.accuracy.Reset()
	evalSet := m.val
	if len(evalSet) == 0 {
		evalSet = m.train
	}
	valLoss := m.trainer.Evaluate(evalSet)

	m.lossHist = append(m.lossHist, trainLoss)
	m.valHist = append(m.valHist, valLoss)
	m.accHist = append(m.accHist, m.accuracy.Value())
	if len(m.lossHist) > historyCapacity {
		m.lossHist = m.lossHist[1:]
		m.valHist = m.valHist[1:]
		m.accHist = m.accHist[1:]
	}

	m.epoch++
	if m.epoch >= m.epochs {
		m.done = true
	}

	return m
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("live training: %s", m.archName)))
	b.WriteString("\n")

	if len(m.lossHist) > 1 {
		graph := asciigraph.Plot(m.lossHist,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("train loss"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	stats := []string{
		renderStat("epoch", fmt.Sprintf("%d / %d", m.epoch, m.epochs)),
		renderStat("lr", fmt.Sprintf("%.5f", m.lr)),
	}
	if n := len(m.lossHist); n > 0 {
		stats = append(stats,
			renderStat("train loss", fmt.Sprintf("%.4f", m.lossHist[n-1])),
			renderStat("val loss", fmt.Sprintf("%.4f", m.valHist[n-1])),
			renderStat("accuracy", fmt.Sprintf("%.2f%%", 100*m.accHist[n-1])),
		)
	}
	b.WriteString(statsStyle.Render(strings.Join(stats, "\n")))
	b.WriteString("\n")

	switch {
	case m.failed != nil:
		b.WriteString(failedStyle.Render(fmt.Sprintf("training failed: %v", m.failed)))
	case m.done:
		b.WriteString(doneStyle.Render("training complete"))
	case !m.running:
		b.WriteString(pausedStyle.Render("paused"))
	}

	b.WriteString(helpStyle.Render("\nspace: pause/resume  q: quit"))

	return b.String()
}

func renderStat(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
