package model

import "time"

const AIWarning = `🤖 Uso Ético de la IA (ChatGPT, Copilot, Cursor)
Estas herramientas pueden ayudarte a aprender, pero deben usarse con responsabilidad:
✅ Úsala como apoyo, no como sustituto de tu razonamiento.
📚 Verifica siempre en fuentes oficiales (no confíes ciegamente en la IA).
🧠 Comprende el código antes de copiarlo. Si no puedes explicarlo, no lo uses.
🛠️ Evita el autocompletado sin revisión. Revisa y adapta lo que te sugiere.
🗣️ Sé transparente: menciona si la usaste y cómo te ayudó.
🚫 No la uses para evadir el aprendizaje. El objetivo es que tú desarrolles las habilidades.
Tu crecimiento como desarrollador depende de tu esfuerzo, no solo de las herramientas que usas.
`

type EvaluationTool struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Evaluation 挂在模块下、面向讲师的评估任务。不自动评分，构造后不再修改
type Evaluation struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Objective    string           `json:"objective"`
	Instructions string           `json:"instructions"`
	Schedule     string           `json:"schedule"`
	Criteria     string           `json:"evaluation"`
	Tools        []EvaluationTool `json:"tools"`
	AIWarning    string           `json:"aiWarning"`
	CreatedAt    time.Time        `json:"createdAt"`
	UpdatedAt    time.Time        `json:"updatedAt"`
}

func NewEvaluation(e Evaluation, now time.Time) Evaluation {
	e.CreatedAt = now
	e.UpdatedAt = now
	e.AIWarning = AIWarning
	if e.Tools == nil {
		e.Tools = []EvaluationTool{}
	}
	return e
}
