package mysql

import (
	"context"

	"library-backend/internal/domain/member"

	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) Create(ctx context.Context, m *member.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MemberRepository) GetByID(ctx context.Context, id uint64) (*member.Member, error) {
	var out member.Member
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *MemberRepository) List(ctx context.Context) ([]member.Member, error) {
	var out []member.Member
	err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC, id ASC").Find(&out).Error
	return out, err
}

func (r *MemberRepository) UpdateStatus(ctx context.Context, id uint64, s member.Status) error {
	return r.db.WithContext(ctx).
		Model(&member.Member{}).
		Where("id = ?", id).
		Update("status", s).Error
}

func (r *MemberRepository) Update(ctx context.Context, m *member.Member) error {
	return r.db.WithContext(ctx).
		Model(m).
		Select("first_name", "last_name", "email", "phone", "address", "birth_date", "status", "updated_at").
		Updates(m).Error
}

func (r *MemberRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&member.Member{}).Error
}
