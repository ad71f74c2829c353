package fallback

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"interview-session-client/internal/config"
)

// Bank представляет локальную базу вопросов, используемую когда удаленный
// сервис недоступен. Список вопросов для каждой категории конечен и
// упорядочен: Next детерминирован для пары (категория, номер)
type Bank struct {
	questions map[config.Style][]string
}

// bankFile представляет YAML файл с пользовательской базой вопросов
type bankFile struct {
	Banks map[string][]string `yaml:"banks"`
}

// DefaultBank возвращает встроенную базу вопросов
func DefaultBank() *Bank {
	return &Bank{questions: defaultQuestions}
}

// LoadBank загружает базу вопросов из YAML файла
func LoadBank(filename string) (*Bank, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var file bankFile
	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга YAML: %w", err)
	}

	if len(file.Banks) == 0 {
		return nil, fmt.Errorf("файл %s не содержит ни одной категории вопросов", filename)
	}

	questions := make(map[config.Style][]string, len(file.Banks))
	for name, list := range file.Banks {
		style := config.Style(name)
		if !style.Valid() {
			return nil, fmt.Errorf("неизвестная категория вопросов: %q", name)
		}
		if len(list) == 0 {
			return nil, fmt.Errorf("категория %q не содержит вопросов", name)
		}
		for i, q := range list {
			if q == "" {
				return nil, fmt.Errorf("категория %q: вопрос %d пустой", name, i+1)
			}
		}
		questions[style] = list
	}

	return &Bank{questions: questions}, nil
}

// Next возвращает вопрос с порядковым номером askedCount (с нуля) для
// категории. Второе значение false означает, что вопросы в категории
// закончились: это сигнал естественного завершения, а не ошибка
func (b *Bank) Next(style config.Style, askedCount int) (string, bool) {
	list, ok := b.questions[style]
	if !ok || askedCount < 0 || askedCount >= len(list) {
		return "", false
	}
	return list[askedCount], true
}

// Size возвращает количество вопросов в категории
func (b *Bank) Size(style config.Style) int {
	return len(b.questions[style])
}

// Встроенная база вопросов по категориям
var defaultQuestions = map[config.Style][]string{
	config.StyleTechnical: {
		"Расскажите о самом сложном техническом проекте, над которым вы работали. Какие решения вы принимали?",
		"Как вы подходите к отладке проблемы, которую не можете воспроизвести локально?",
		"Опишите случай, когда вам пришлось выбирать между быстрым решением и качественным. Что вы выбрали и почему?",
		"Как вы оцениваете производительность системы и находите узкие места?",
		"Расскажите про архитектурное решение, о котором вы потом пожалели. Что бы вы сделали иначе?",
		"Как вы поддерживаете свои технические знания актуальными?",
		"Опишите процесс код-ревью в вашей команде. Что бы вы в нем улучшили?",
		"Как бы вы спроектировали систему, которая должна выдерживать десятикратный рост нагрузки?",
	},
	config.StyleHR: {
		"Расскажите немного о себе и своем профессиональном пути.",
		"Почему вы рассматриваете смену работы?",
		"Что для вас самое важное в команде и рабочей атмосфере?",
		"Какие у вас ожидания от нового места работы?",
		"Расскажите о конфликте на работе и как вы его разрешили.",
		"Где вы видите себя через три года?",
		"Что вас мотивирует работать лучше?",
	},
	config.StyleBehavioral: {
		"Расскажите о ситуации, когда вы не уложились в срок. Как вы действовали?",
		"Опишите случай, когда вам пришлось убедить коллег в своем решении.",
		"Расскажите о самой большой профессиональной ошибке и чему она вас научила.",
		"Опишите ситуацию, когда вам пришлось работать с трудным коллегой.",
		"Расскажите о случае, когда вы взяли на себя ответственность за чужую задачу.",
		"Как вы действуете, когда получаете критику своей работы?",
		"Расскажите о решении, которое вы приняли при недостатке информации.",
	},
	config.StyleSalaryNegotiation: {
		"Какие у вас ожидания по компенсации?",
		"Как вы оцениваете свой вклад в результаты текущей компании?",
		"Что, кроме зарплаты, важно для вас в предложении?",
		"Как вы отреагируете, если предложение окажется ниже ваших ожиданий?",
		"Расскажите о случае, когда вы успешно договорились об условиях.",
		"Готовы ли вы обосновать запрашиваемый уровень конкретными достижениями?",
	},
	config.StyleCaseStudy: {
		"Представьте: ключевой сервис недоступен, клиенты жалуются, причина неизвестна. Ваши первые шаги?",
		"Компания хочет выйти на новый рынок за полгода. Как бы вы спланировали работу команды?",
		"У вас два сильных кандидата на одну позицию. Как примете решение?",
		"Продукт теряет пользователей второй месяц подряд. Как найдете причину?",
		"Вам дали проект с нереалистичным сроком. Как будете действовать?",
		"Бюджет команды сократили на треть. Что будете резать и почему?",
	},
}
