package seed

import (
	"time"

	"creai_edu_backend/internal/model"
)

const (
	InternetModuleID   = "internet-module"
	InternetModuleSlug = "como-funciona-internet"
	EvaluationID       = "internet-module-evaluation"

	URLParserExerciseID        = "url-parser"
	NetworkValidatorExerciseID = "network-validator"

	// 用于验证可见性规则的非发布内容
	DraftModuleID      = "redes-avanzadas"
	ArchivedLessonSlug = "historia-de-arpanet"
)

// CodeExerciseWidget 前端代码练习组件名
const CodeExerciseWidget = "CodeExerciseWidget"

const evaluationInstructions = `
# Crea un servidor web usando Node.js
- Empieza con la siguiente lectura: "¿Qué es localhost? Ventajas y usos prácticos": https://www.hostinger.com/es/tutoriales/que-es-localhost
- De momento, sólo crea un servidor básico siguiendo el siguiente ejemplo:
https://www.geeksforgeeks.org/node-js/how-to-build-a-simple-web-server-with-node-js/
Edita el archivo index.js para poner un "Hola Mundo [tu nombre]" en el navegador.
- Usa Git para crear un repositorio y subir el proyecto.

`

const evaluationCriteria = `
Los temas que se pueden abordar durante la evaluación oral son:
- DNS e IP
- Protocolos de red
- Seguridad básica con HTTPS
- Node y NPM
- Comandos de GIT
`

func internetEvaluation(now time.Time) model.Evaluation {
	return model.NewEvaluation(model.Evaluation{
		ID:           EvaluationID,
		Name:         "Módulo II Semana 1: Cómo Funciona Internet",
		Objective:    "Conocer los fundamentos de los servidores web y el uso de localhost. Desarrollar y ejecutar un proyecto utilizando Node.js, y gestionar el control de versiones mediante Git, creando un repositorio y subiendo el proyecto.",
		Instructions: evaluationInstructions,
		Schedule:     "Evaluación oral: 14 de agosto de 2025",
		Criteria:     evaluationCriteria,
		Tools: []model.EvaluationTool{
			{URL: "https://www.hostinger.com/es/tutorials/que-es-localhost", Description: "¿Qué es localhost? Ventajas y usos prácticos"},
			{URL: "https://www.geeksforgeeks.org/node-js/how-to-build-a-simple-web-server-with-node-js/", Description: "How to Build a Simple Web Server with Node.js"},
			{URL: "https://www.freecodecamp.org/espanol/news/node-js-npm-tutorial/", Description: "Node.js y NPM Tutorial (FreeCodeCamp)"},
			{URL: "https://git-scm.com/book/es/v2", Description: "Git (tiene un libro que te puede interesar)"},
			{URL: "https://nodejs.org/en/learn/getting-started/introduction-to-nodejs", Description: "Introduction to Node.js (Documentación oficial)"},
			{URL: "https://learn.microsoft.com/es-es/windows/dev-environment/javascript/nodejs-beginners-tutorial", Description: "Node.js Beginners Tutorial (Microsoft)"},
		},
	}, now)
}

func internetModule(now time.Time) model.Module {
	return model.Module{
		ID:                InternetModuleID,
		Title:             "Cómo Funciona Internet",
		Description:       "Descubre de manera sencilla cómo funciona Internet, desde direcciones IP hasta protocolos de comunicación, usando ejemplos de la vida cotidiana.",
		Slug:              InternetModuleSlug,
		Difficulty:        model.DifficultyBeginner,
		Status:            model.StatusPublished,
		EstimatedDuration: 90,
		Order:             1,
		Tags:              []string{"networking", "internet", "web", "protocolos"},
		IconURL:           "/images/modules/internet.svg",
		CoverImageURL:     "/images/modules/internet-cover.jpg",
		Prerequisites:     []string{},
		LearningObjectives: []string{
			"Entender cómo se transmite información en Internet",
			"Aprender qué protocolos se usan y para qué sirven",
			"Descubrir cómo navegadores y servidores se comunican",
			"Comprender la seguridad en línea con HTTPS y SSL",
		},
		Evaluations: []model.Evaluation{internetEvaluation(now)},
		CreatedAt:   now,
		UpdatedAt:   now,
		PublishedAt: &now,
	}
}

func draftModule(now time.Time) model.Module {
	return model.Module{
		ID:                DraftModuleID,
		Title:             "Redes Avanzadas",
		Description:       "Subredes, enrutamiento y NAT. Contenido en preparación.",
		Slug:              "redes-avanzadas",
		Difficulty:        model.DifficultyIntermediate,
		Status:            model.StatusDraft,
		EstimatedDuration: 120,
		Order:             2,
		Tags:              []string{"networking", "subredes", "nat"},
		Prerequisites:     []string{InternetModuleSlug},
		LearningObjectives: []string{
			"Calcular subredes a partir de una máscara",
			"Entender cómo un router elige la siguiente ruta",
		},
		Evaluations: []model.Evaluation{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// dnsQuiz 课程内测验，题目取自 DNS 实时练习
func dnsQuiz() model.QuizContent {
	return model.QuizContent{
		Title: "Repaso rápido: DNS",
		Questions: []model.QuizQuestion{
			{
				ID:       "dns-q1",
				Question: "¿Qué hace el DNS cuando escribes google.com en tu navegador?",
				Options: []string{
					"Descarga la página directamente",
					"Traduce el nombre a una dirección IP",
					"Cifra la conexión",
					"Guarda tus contraseñas",
				},
				CorrectAnswer: 1,
				Explanation:   "El DNS funciona como una guía telefónica: traduce nombres fáciles de recordar en direcciones IP.",
				Points:        10,
			},
			{
				ID:            "dns-q2",
				Question:      "¿Qué tipo de registro DNS apunta un dominio a una dirección IPv4?",
				Options:       []string{"MX", "CNAME", "A", "TXT"},
				CorrectAnswer: 2,
				Explanation:   "El registro A asocia un nombre de dominio con una dirección IPv4.",
				Points:        10,
			},
			{
				ID:       "dns-q3",
				Question: "¿Cuál es la diferencia principal entre HTTP y HTTPS?",
				Options: []string{
					"HTTP es más rápido",
					"HTTPS proporciona cifrado y seguridad",
					"No hay diferencia",
					"HTTP funciona mejor",
				},
				CorrectAnswer: 1,
				Explanation:   "HTTPS cifra la comunicación entre tu navegador y el servidor.",
				Points:        15,
			},
		},
	}
}

func internetLessons(now time.Time) []model.Lesson {
	lesson := func(l model.Lesson) model.Lesson {
		l.ModuleID = InternetModuleID
		l.Type = model.LessonConcept
		l.Difficulty = model.DifficultyBeginner
		l.Status = model.StatusPublished
		l.CreatedAt = now
		l.UpdatedAt = now
		l.PublishedAt = &now
		if l.Prerequisites == nil {
			l.Prerequisites = []string{}
		}
		return l
	}

	return []model.Lesson{
		lesson(model.Lesson{
			ID:                "fundamentos-internet",
			Title:             "Internet: Las Carreteras Invisibles",
			Description:       "Comprende cómo funciona Internet usando la analogía de carreteras invisibles por donde viajan los mensajes.",
			Slug:              "fundamentos-de-internet",
			Order:             1,
			EstimatedDuration: 20,
			Tags:              []string{"networking", "internet", "ip", "dns"},
			Objectives: []string{
				"Entender Internet como un sistema de carreteras invisibles",
				"Descubrir cómo viajan los datos entre dispositivos",
				"Aprender sobre direcciones IP y DNS",
			},
			ContentBlocks: []model.ContentBlock{
				model.TextBlock(fundamentosText),
				model.WidgetBlock(model.Widget{
					WidgetType:  "IPAddressWidget",
					Description: "Descubre tu dirección IP actual y aprende qué tipo de dirección es.",
				}),
				model.ExternalQuizBlock(model.ExternalQuiz{
					Title:       "Quiz: Fundamentos de Internet",
					Description: "Evalúa tu comprensión sobre direcciones IP, carreteras digitales y conceptos básicos de Internet.",
					URL:         "https://forms.office.com/r/ENCY000q5L",
				}),
			},
			IconURL: "/images/lessons/internet-basics.svg",
		}),
		lesson(model.Lesson{
			ID:                "protocolos-internet",
			Title:             "Protocolos: Las Reglas de Conversación",
			Description:       "Aprende sobre los protocolos como reglas de conversación que permiten a los dispositivos entenderse.",
			Slug:              "protocolos-internet",
			Order:             2,
			EstimatedDuration: 25,
			Tags:              []string{"protocolos", "http", "https", "websockets"},
			Objectives: []string{
				"Entender qué son los protocolos de Internet",
				"Conocer los principales protocolos y sus usos",
				"Diferenciar entre HTTP y HTTPS",
			},
			Prerequisites: []string{"fundamentos-de-internet"},
			ContentBlocks: []model.ContentBlock{
				model.TextBlock(protocolosText),
				model.WidgetBlock(model.Widget{
					WidgetType:  "HTTPExplorerWidget",
					Description: "Explora cómo funcionan las peticiones HTTP en tiempo real.",
				}),
				model.WidgetBlock(model.Widget{
					WidgetType:   CodeExerciseWidget,
					Title:        "🛠️ Ejercicio: Parseador de URLs",
					Description:  "Crea una función que extraiga el protocolo de una URL",
					ExerciseType: "code",
					ExerciseID:   URLParserExerciseID,
				}),
				// 原内容此处测验链接为空
				model.ExternalQuizBlock(model.ExternalQuiz{
					Title:       "Quiz: Protocolos de Internet",
					Description: "Pon a prueba tus conocimientos sobre HTTP, HTTPS, FTP y otros protocolos de comunicación.",
				}),
			},
			IconURL: "/images/lessons/protocols.svg",
		}),
		lesson(model.Lesson{
			ID:                "dns-detallado",
			Title:             "DNS: La Guía Telefónica de Internet",
			Description:       "Profundiza en cómo funciona el sistema DNS y sus diferentes tipos de registros.",
			Slug:              "dns-detallado",
			Order:             3,
			EstimatedDuration: 30,
			Tags:              []string{"dns", "dominios", "registros"},
			Objectives: []string{
				"Entender el proceso completo de resolución DNS",
				"Conocer los diferentes tipos de registros DNS",
				"Practicar con ejemplos reales de DNS",
			},
			Prerequisites: []string{"protocolos-internet"},
			ContentBlocks: []model.ContentBlock{
				model.TextBlock(dnsText),
				model.WidgetBlock(model.Widget{
					WidgetType:  "DNSLookupWidget",
					Description: "Explora las direcciones IP detrás de tus sitios web favoritos.",
				}),
				model.QuizBlock(dnsQuiz()),
				model.ExternalQuizBlock(model.ExternalQuiz{
					Title:       "Quiz: DNS y Registros",
					Description: "Evalúa tu conocimiento sobre el sistema DNS, tipos de registros y resolución de dominios.",
					URL:         "https://forms.office.com/r/vv8b7cN37u",
				}),
			},
			IconURL: "/images/lessons/dns-detailed.svg",
		}),
		lesson(model.Lesson{
			ID:                "http-navegadores",
			Title:             "HTTP y los Navegadores",
			Description:       "Descubre cómo funcionan las solicitudes y respuestas HTTP, y los diferentes métodos de comunicación.",
			Slug:              "http-navegadores",
			Order:             4,
			EstimatedDuration: 25,
			Tags:              []string{"http", "navegadores", "solicitudes", "respuestas"},
			Objectives: []string{
				"Entender el ciclo de solicitud y respuesta HTTP",
				"Conocer los diferentes métodos HTTP",
				"Aprender sobre códigos de estado",
			},
			Prerequisites: []string{"dns-detallado"},
			ContentBlocks: []model.ContentBlock{
				model.TextBlock(httpText),
				model.WidgetBlock(model.Widget{
					WidgetType:   CodeExerciseWidget,
					Title:        "🛠️ Ejercicio Final: Validador de Red Completo",
					Description:  "Crea una función que valide tanto IPs como URLs y determine si son seguras",
					ExerciseType: "code",
					ExerciseID:   NetworkValidatorExerciseID,
				}),
				model.ExternalQuizBlock(model.ExternalQuiz{
					Title:       "Quiz: Métodos HTTP",
					Description: "Pon a prueba tu comprensión sobre GET, POST, PUT, DELETE y códigos de respuesta HTTP.",
					URL:         "https://forms.office.com/r/bKFukS5LZy",
				}),
			},
			IconURL: "/images/lessons/http-browsers.svg",
		}),
		lesson(model.Lesson{
			ID:                "seguridad-web",
			Title:             "Seguridad en la Web: HTTPS, SSL y Cookies",
			Description:       "Aprende sobre la seguridad en Internet, cookies, sesiones y encriptación de manera simple.",
			Slug:              "seguridad-web",
			Order:             5,
			EstimatedDuration: 35,
			Tags:              []string{"seguridad", "https", "ssl", "cookies", "cors"},
			Objectives: []string{
				"Entender qué son las cookies y las sesiones",
				"Aprender sobre HTTPS y encriptación",
				"Conocer CORS y su importancia para la seguridad",
			},
			Prerequisites: []string{"http-navegadores"},
			ContentBlocks: []model.ContentBlock{
				model.TextBlock(seguridadText),
				model.ExternalQuizBlock(model.ExternalQuiz{
					Title:       "Quiz: Cookies y Seguridad Web",
					Description: "Evalúa tu conocimiento sobre cookies, SSL/TLS, certificados y seguridad en línea.",
					URL:         "https://forms.office.com/r/Z3KnRuWRq3",
				}),
				model.TextBlock(resumenText),
				model.ExternalQuizBlock(model.ExternalQuiz{
					Title:       "Quiz Final: Cómo Funciona Internet",
					Description: "Evalúa todo lo que has aprendido sobre Internet, protocolos, DNS y seguridad en línea. Este quiz completo pone a prueba tus conocimientos del módulo.",
					URL:         "https://forms.office.com/r/ENCY000q5L",
				}),
			},
			IconURL: "/images/lessons/web-security.svg",
		}),
	}
}

// archivedLesson 已归档，不应出现在任何公开列表中
func archivedLesson(now time.Time) model.Lesson {
	return model.Lesson{
		ID:                "historia-arpanet",
		ModuleID:          InternetModuleID,
		Title:             "Historia de ARPANET",
		Description:       "Lección retirada del temario.",
		Slug:              ArchivedLessonSlug,
		Type:              model.LessonConcept,
		Order:             6,
		EstimatedDuration: 10,
		Tags:              []string{"historia"},
		Objectives:        []string{},
		Prerequisites:     []string{},
		ContentBlocks: []model.ContentBlock{
			model.TextBlock("# ARPANET\n\nLa red que dio origen a Internet en 1969."),
		},
		Difficulty: model.DifficultyBeginner,
		Status:     model.StatusArchived,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func internetExercises() []model.CodeExercise {
	return []model.CodeExercise{
		{
			ID:          URLParserExerciseID,
			LessonID:    "protocolos-internet",
			Title:       "🛠️ Ejercicio: Parseador de URLs",
			Description: "Crea una función que extraiga el protocolo de una URL",
			StartingCode: `// Completa esta función para extraer el protocolo de una URL
function getProtocol(url) {
  // Tu código aquí
  // Pista: usa split(':') o indexOf(':')

  let result = ""; // Define tu resultado aquí
  return result;
}

// El resultado debe ser asignado a la variable 'result'
const result = getProtocol("https://www.google.com");`,
			ExpectedOutput: "https",
			TestCases: []model.TestCase{
				{Input: "https://www.google.com", Expected: "https", Description: "URL HTTPS básica"},
				{Input: "http://example.com", Expected: "http", Description: "URL HTTP básica"},
				{Input: "ftp://files.example.com", Expected: "ftp", Description: "URL FTP"},
			},
			Hints: []string{
				"Las URLs tienen el formato: protocolo://dominio/ruta",
				`Puedes usar split(":") para dividir la URL`,
				`El protocolo es la primera parte antes de "://"`,
				`También puedes usar indexOf(":") para encontrar la posición`,
			},
			Points: 25,
		},
		{
			ID:          NetworkValidatorExerciseID,
			LessonID:    "http-navegadores",
			Title:       "🛠️ Ejercicio Final: Validador de Red Completo",
			Description: "Crea una función que valide tanto IPs como URLs y determine si son seguras",
			StartingCode: `// Crea una función que analice si una dirección es segura
function isSecureAddress(address) {
  // Determina si es IP o URL
  // Para IPs: considera seguras las privadas (192.168.x.x, 10.x.x.x, 172.16-31.x.x)
  // Para URLs: considera seguras solo las HTTPS

  let result = "unknown"; // Cambia esto por "secure", "insecure", o "invalid"

  // Tu código aquí

  return result;
}

// Test con diferentes tipos de direcciones
const result = isSecureAddress("https://www.google.com");`,
			ExpectedOutput: "secure",
			TestCases: []model.TestCase{
				{Input: "https://www.google.com", Expected: "secure", Description: "URL HTTPS (segura)"},
				{Input: "http://example.com", Expected: "insecure", Description: "URL HTTP (insegura)"},
				{Input: "192.168.1.1", Expected: "secure", Description: "IP privada (segura)"},
				{Input: "8.8.8.8", Expected: "insecure", Description: "IP pública (insegura para red local)"},
				{Input: "invalid-address", Expected: "invalid", Description: "Dirección inválida"},
			},
			Hints: []string{
				`Usa includes() para verificar si contiene "https://" o "http://"`,
				`Para IPs, verifica si comienza con "192.168." o "10." o "172."`,
				`Puedes usar split(".") para analizar los octetos de IP`,
				"Recuerda manejar el caso de direcciones inválidas",
			},
			Points: 40,
		},
	}
}
