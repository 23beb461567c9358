package importer

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jhoicas/Importador-api/internal/domain/entity"
	"github.com/jhoicas/Importador-api/pkg/seo"
)

// importAvatar resuelve la referencia de avatar de la fila, descarga el
// binario (esperando a que la descarga termine), lo valida, lo deduplica
// contra el avatar ya vinculado y lo persiste como activo de media. Las
// fallas de descarga o validación son informativas, nunca fatales; solo los
// errores de persistencia se propagan a la fase.
func (e *Engine) importAvatar(ctx context.Context, row *Row, res *Result) error {
	rawURL := row.Get("AvatarUrl")
	if rawURL == "" {
		return nil
	}
	customer := row.Customer
	seoName := seo.Name(customer.DisplayName())

	item := e.downloader.Resolve(rawURL, e.settings.AvatarDownloadDir, seoName)
	if item == nil {
		return nil
	}

	if item.URL != "" && !item.Success && item.ErrorMessage == "" {
		if err := e.downloader.Download(ctx, item); err != nil {
			item.ErrorMessage = err.Error()
		}
	}
	if !item.Success || item.Path == "" {
		res.addInfo(row.Position, "AvatarUrl", "no se pudo descargar el avatar: "+item.ErrorMessage)
		return nil
	}

	binary, err := os.ReadFile(item.Path)
	if err != nil {
		res.addWarn(row.Position, "AvatarUrl", "no se pudo leer el archivo descargado: "+err.Error())
		return nil
	}
	if len(binary) == 0 {
		return nil
	}

	// Avatar actual del cliente, para comparar.
	var candidates []*entity.Picture
	currentID, err := e.repos.Attributes.Get(ctx, customer.ID, entity.AttributeKeyGroupCustomer, entity.AttrAvatarPictureID)
	if err != nil {
		return fmt.Errorf("leer avatar actual: %w", err)
	}
	if currentID != "" {
		if id, parseErr := strconv.ParseInt(currentID, 10, 64); parseErr == nil {
			current, err := e.repos.Pictures.GetByID(ctx, id)
			if err != nil {
				return fmt.Errorf("cargar imagen %d: %w", id, err)
			}
			if current != nil {
				candidates = append(candidates, current)
			}
		}
	}

	normalized, err := e.media.ValidatePicture(binary, item.MimeType)
	if err != nil {
		res.addWarn(row.Position, "AvatarUrl", "imagen inválida: "+err.Error())
		return nil
	}
	if _, found := e.media.FindEqualPicture(normalized, candidates); found {
		res.addInfo(row.Position, "AvatarUrl", "ya existe una imagen igual vinculada al cliente; se omite")
		return nil
	}

	picture := &entity.Picture{
		MimeType:     item.MimeType,
		SeoFilename:  seoName,
		Binary:       normalized,
		UpdatedOnUTC: time.Now().UTC(),
	}
	if err := e.repos.Pictures.Insert(ctx, picture); err != nil {
		return fmt.Errorf("insertar imagen: %w", err)
	}
	return e.repos.Attributes.Save(ctx, customer.ID, entity.AttributeKeyGroupCustomer,
		entity.AttrAvatarPictureID, strconv.FormatInt(picture.ID, 10))
}
