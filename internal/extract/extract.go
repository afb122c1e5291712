// Package extract достаёт именованные JSON-объекты из свободного текста
// ответа модели. Модель перемежает полезные блоки разговорным текстом,
// поэтому блоки ищутся по имени, а не по позиции.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"

	"uidiff-bot/internal/domain/entity"
)

// blockPattern строит шаблон огороженного блока, содержимое которого
// начинается с объекта по ключу name. Тег языка после ``` необязателен
// и сравнивается без учёта регистра; берётся первый подходящий блок.
func blockPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(
		"(?is)```(?:json)?\\s*(\\{\\s*\"" + regexp.QuoteMeta(name) + "\"\\s*:.*?\\})\\s*```",
	)
}

// Object находит блок с объектом {"name": ...} и раскладывает значение
// ключа name в out. Возвращает *entity.ExtractionError если блока нет и
// *entity.MalformedPayloadError если найденный блок не разбирается.
func Object(text, name string, out any) error {
	m := blockPattern(name).FindStringSubmatch(text)
	if m == nil {
		return &entity.ExtractionError{Object: name, Response: text}
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(m[1]), &wrapper); err != nil {
		return &entity.MalformedPayloadError{Object: name, Reason: "block is not valid JSON", Err: err}
	}

	raw, ok := wrapper[name]
	if !ok {
		return &entity.MalformedPayloadError{Object: name, Reason: fmt.Sprintf("object lacks %q key", name)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return &entity.MalformedPayloadError{Object: name, Reason: "unexpected value shape", Err: err}
	}
	return nil
}
