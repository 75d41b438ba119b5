package domain

import "fmt"

var (
	MessageSuccessGetCatalog    = "success get %s"
	MessageSuccessCreateCatalog = "%s created successfully"
	MessageSuccessUpdateCatalog = "%s updated successfully"
	MessageSuccessDeleteCatalog = "%s deleted successfully"
	MessageFailedGetCatalog     = "failed to get %s"
	MessageFailedCreateCatalog  = "failed to create %s"
	MessageFailedUpdateCatalog  = "failed to update %s"
	MessageFailedDeleteCatalog  = "failed to delete %s"
)

type CatalogRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

func CatalogMessage(format, kind string) string {
	return fmt.Sprintf(format, kind)
}
