package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

// Apenas letras e dígitos: o ID vai para atributos id do HTML e nomes de variáveis JS
const elementIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const elementIDLength = 10

// GenerateElementID gera um identificador único para elementos renderizados,
// no formato <prefix>_<id>.
func GenerateElementID(prefix string) (string, error) {
	id, err := gonanoid.Generate(elementIDAlphabet, elementIDLength)
	if err != nil {
		return "", err
	}

	return prefix + "_" + id, nil
}
