package repository

import (
	"context"

	"github.com/feinwerk/workbench-api/internal/domain"
	"gorm.io/gorm"
)

type AttributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

func (r *AttributeRepository) CreateGroup(ctx context.Context, g *domain.AttributeGroup) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *AttributeRepository) GetGroupByID(ctx context.Context, id uint) (*domain.AttributeGroup, error) {
	var g domain.AttributeGroup
	err := r.db.WithContext(ctx).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		First(&g, id).Error
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *AttributeRepository) UpdateGroup(ctx context.Context, g *domain.AttributeGroup) error {
	return r.db.WithContext(ctx).Omit("Attributes").Save(g).Error
}

// DeleteGroup removes a group together with its attributes. Callers must
// check CountGroupReferences first; a group whose attributes are still
// attached to deals stays.
func (r *AttributeRepository) DeleteGroup(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("group_id = ?", id).Delete(&domain.Attribute{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.AttributeGroup{}, id).Error
	})
}

// ListGroups returns groups ordered by position, each with its attributes.
// Without includeArchived both archived groups and archived attributes of
// live groups are filtered out, matching what a picker should offer.
func (r *AttributeRepository) ListGroups(ctx context.Context, includeArchived bool) ([]domain.AttributeGroup, error) {
	var groups []domain.AttributeGroup
	query := r.db.WithContext(ctx).Model(&domain.AttributeGroup{}).
		Preload("Attributes", func(db *gorm.DB) *gorm.DB {
			if !includeArchived {
				db = db.Where("is_archived = ?", false)
			}
			return db.Order("position ASC, id ASC")
		})
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	err := query.Order("position ASC, id ASC").Find(&groups).Error
	return groups, err
}

func (r *AttributeRepository) CreateAttribute(ctx context.Context, a *domain.Attribute) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AttributeRepository) GetAttributeByID(ctx context.Context, id uint) (*domain.Attribute, error) {
	var a domain.Attribute
	err := r.db.WithContext(ctx).Preload("Group").First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttributeRepository) UpdateAttribute(ctx context.Context, a *domain.Attribute) error {
	return r.db.WithContext(ctx).Omit("Group").Save(a).Error
}

func (r *AttributeRepository) DeleteAttribute(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Attribute{}, id).Error
}

// GetAttributesByIDs loads the named attributes with their groups, in one
// query. Fewer rows than ids means one of them does not exist.
func (r *AttributeRepository) GetAttributesByIDs(ctx context.Context, ids []uint) ([]domain.Attribute, error) {
	var attrs []domain.Attribute
	if len(ids) == 0 {
		return attrs, nil
	}
	err := r.db.WithContext(ctx).Preload("Group").Where("id IN ?", ids).Find(&attrs).Error
	return attrs, err
}

// RequiredGroups returns the live groups every deal must carry a
// selection for.
func (r *AttributeRepository) RequiredGroups(ctx context.Context) ([]domain.AttributeGroup, error) {
	var groups []domain.AttributeGroup
	err := r.db.WithContext(ctx).
		Where("is_required = ? AND is_archived = ?", true, false).
		Order("position ASC, id ASC").
		Find(&groups).Error
	return groups, err
}

// CountAttributeReferences counts deals carrying an attribute. An
// attribute in use must not be deleted, only archived.
func (r *AttributeRepository) CountAttributeReferences(ctx context.Context, attributeID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("deal_attributes").
		Where("attribute_id = ?", attributeID).Count(&count).Error
	return count, err
}

// CountGroupReferences counts deals carrying any attribute of a group.
func (r *AttributeRepository) CountGroupReferences(ctx context.Context, groupID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("deal_attributes").
		Joins("JOIN attributes ON attributes.id = deal_attributes.attribute_id").
		Where("attributes.group_id = ?", groupID).Count(&count).Error
	return count, err
}
