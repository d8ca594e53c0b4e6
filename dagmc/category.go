package dagmc

// Category identifies an entity's role in the geometric model. The category
// and geometric dimension tags are mutually derivable through this mapping.
type Category string

const (
	CategorySurface Category = "Surface"
	CategoryVolume  Category = "Volume"
	CategoryGroup   Category = "Group"
)

// categories lists the known categories in ascending dimension order.
var categories = []Category{CategorySurface, CategoryVolume, CategoryGroup}

// GeomDimension returns the geometric dimension encoded by the category
// (2=Surface, 3=Volume, 4=Group), or 0 for an unknown category.
func (c Category) GeomDimension() int {
	switch c {
	case CategorySurface:
		return 2
	case CategoryVolume:
		return 3
	case CategoryGroup:
		return 4
	}
	return 0
}
