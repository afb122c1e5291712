package port

// OutputWriter интерфейс сохранения готового изображения с подсветкой
type OutputWriter interface {
	// Save пишет растр в новый файл и возвращает его абсолютный путь.
	// Имя строится из baseName и метки времени, коллизий не бывает.
	Save(baseName string, data []byte) (string, error)
}
