package forest

// Metrics summarizes a binary evaluation for one positive class.
type Metrics struct {
	Accuracy  float64 `json:"accuracy"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Evaluate compares predictions to truth, treating positive as the class of interest.
func Evaluate(yTrue, yPred []string, positive string) Metrics {
	m := Metrics{Support: len(yTrue)}
	if len(yTrue) == 0 || len(yTrue) != len(yPred) {
		return m
	}
	correct, tp, fp, fn := 0, 0, 0, 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
		switch {
		case yPred[i] == positive && yTrue[i] == positive:
			tp++
		case yPred[i] == positive && yTrue[i] != positive:
			fp++
		case yPred[i] != positive && yTrue[i] == positive:
			fn++
		}
	}
	m.Accuracy = float64(correct) / float64(len(yTrue))
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m
}
